package postgres

import (
	"context"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = storage.ErrNotFound

// PostgresStorage — Postgres реализация Storage
type PostgresStorage struct {
	pool          *pgxpool.Pool
	nutritionLogs *nutritionLogsStorage
	goals         *goalsStorage
	sleepLogs     *sleepLogsStorage
	activityLogs  *activityLogsStorage
	habits        *habitsStorage
}

// New создаёт PostgresStorage
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStorage{
		pool:          pool,
		nutritionLogs: newNutritionLogsStorage(pool),
		goals:         newGoalsStorage(pool),
		sleepLogs:     newSleepLogsStorage(pool),
		activityLogs:  newActivityLogsStorage(pool),
		habits:        newHabitsStorage(pool),
	}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// NutritionLogsStorage methods - делегируем к встроенному storage

func (p *PostgresStorage) InsertLog(ctx context.Context, row *storage.NutritionLogRow) error {
	return p.nutritionLogs.InsertLog(ctx, row)
}

func (p *PostgresStorage) ListLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.NutritionLogRow, error) {
	return p.nutritionLogs.ListLogsByDate(ctx, ownerUserID, date)
}

// GoalsStorage methods - делегируем к встроенному storage

func (p *PostgresStorage) GetGoal(ctx context.Context, ownerUserID string, category string) (*storage.GoalRow, error) {
	return p.goals.GetGoal(ctx, ownerUserID, category)
}

func (p *PostgresStorage) GoalExists(ctx context.Context, ownerUserID string, category string) (bool, error) {
	return p.goals.GoalExists(ctx, ownerUserID, category)
}

func (p *PostgresStorage) UpsertGoal(ctx context.Context, ownerUserID string, category string, upsert storage.GoalUpsert) (*storage.GoalRow, error) {
	return p.goals.UpsertGoal(ctx, ownerUserID, category, upsert)
}

// SleepLogsStorage methods - delegate to embedded sleep logs storage

func (p *PostgresStorage) InsertSleepLog(ctx context.Context, row *storage.SleepLogRow) error {
	return p.sleepLogs.InsertSleepLog(ctx, row)
}

func (p *PostgresStorage) ListSleepLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.SleepLogRow, error) {
	return p.sleepLogs.ListSleepLogsByDate(ctx, ownerUserID, date)
}

// ActivityLogsStorage methods - delegate to embedded activity logs storage

func (p *PostgresStorage) InsertActivityLog(ctx context.Context, row *storage.ActivityLogRow) error {
	return p.activityLogs.InsertActivityLog(ctx, row)
}

func (p *PostgresStorage) ListActivityLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.ActivityLogRow, error) {
	return p.activityLogs.ListActivityLogsByDate(ctx, ownerUserID, date)
}

// HabitsStorage methods - delegate to embedded habits storage

func (p *PostgresStorage) CreateHabit(ctx context.Context, row *storage.HabitRow) error {
	return p.habits.CreateHabit(ctx, row)
}

func (p *PostgresStorage) ListHabits(ctx context.Context, ownerUserID string) ([]storage.HabitRow, error) {
	return p.habits.ListHabits(ctx, ownerUserID)
}

func (p *PostgresStorage) GetHabit(ctx context.Context, id uuid.UUID) (*storage.HabitRow, error) {
	return p.habits.GetHabit(ctx, id)
}

func (p *PostgresStorage) UpsertCompletion(ctx context.Context, row *storage.HabitCompletionRow) error {
	return p.habits.UpsertCompletion(ctx, row)
}

func (p *PostgresStorage) DeleteCompletion(ctx context.Context, habitID uuid.UUID, date string) error {
	return p.habits.DeleteCompletion(ctx, habitID, date)
}

func (p *PostgresStorage) ListCompletionsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.HabitCompletionRow, error) {
	return p.habits.ListCompletionsByDate(ctx, ownerUserID, date)
}
