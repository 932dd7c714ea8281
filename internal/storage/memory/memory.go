package memory

import (
	"context"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

var ErrNotFound = storage.ErrNotFound

// MemoryStorage — in-memory реализация Storage
type MemoryStorage struct {
	nutritionLogs *NutritionLogsMemoryStorage
	goals         *GoalsMemoryStorage
	sleepLogs     *SleepLogsMemoryStorage
	activityLogs  *ActivityLogsMemoryStorage
	habits        *HabitsMemoryStorage
}

// New создаёт новый MemoryStorage
func New() *MemoryStorage {
	return &MemoryStorage{
		nutritionLogs: NewNutritionLogsMemoryStorage(),
		goals:         NewGoalsMemoryStorage(),
		sleepLogs:     NewSleepLogsMemoryStorage(),
		activityLogs:  NewActivityLogsMemoryStorage(),
		habits:        NewHabitsMemoryStorage(),
	}
}

func (m *MemoryStorage) Close() error {
	// no-op для memory
	return nil
}

// NutritionLogsStorage methods - делегируем к встроенному storage

func (m *MemoryStorage) InsertLog(ctx context.Context, row *storage.NutritionLogRow) error {
	return m.nutritionLogs.InsertLog(ctx, row)
}

func (m *MemoryStorage) ListLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.NutritionLogRow, error) {
	return m.nutritionLogs.ListLogsByDate(ctx, ownerUserID, date)
}

// GoalsStorage methods - делегируем к встроенному storage

func (m *MemoryStorage) GetGoal(ctx context.Context, ownerUserID string, category string) (*storage.GoalRow, error) {
	return m.goals.GetGoal(ctx, ownerUserID, category)
}

func (m *MemoryStorage) GoalExists(ctx context.Context, ownerUserID string, category string) (bool, error) {
	return m.goals.GoalExists(ctx, ownerUserID, category)
}

func (m *MemoryStorage) UpsertGoal(ctx context.Context, ownerUserID string, category string, upsert storage.GoalUpsert) (*storage.GoalRow, error) {
	return m.goals.UpsertGoal(ctx, ownerUserID, category, upsert)
}

// SleepLogsStorage methods - delegate to embedded sleep logs storage

func (m *MemoryStorage) InsertSleepLog(ctx context.Context, row *storage.SleepLogRow) error {
	return m.sleepLogs.InsertSleepLog(ctx, row)
}

func (m *MemoryStorage) ListSleepLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.SleepLogRow, error) {
	return m.sleepLogs.ListSleepLogsByDate(ctx, ownerUserID, date)
}

// ActivityLogsStorage methods - delegate to embedded activity logs storage

func (m *MemoryStorage) InsertActivityLog(ctx context.Context, row *storage.ActivityLogRow) error {
	return m.activityLogs.InsertActivityLog(ctx, row)
}

func (m *MemoryStorage) ListActivityLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.ActivityLogRow, error) {
	return m.activityLogs.ListActivityLogsByDate(ctx, ownerUserID, date)
}

// HabitsStorage methods - delegate to embedded habits storage

func (m *MemoryStorage) CreateHabit(ctx context.Context, row *storage.HabitRow) error {
	return m.habits.CreateHabit(ctx, row)
}

func (m *MemoryStorage) ListHabits(ctx context.Context, ownerUserID string) ([]storage.HabitRow, error) {
	return m.habits.ListHabits(ctx, ownerUserID)
}

func (m *MemoryStorage) GetHabit(ctx context.Context, id uuid.UUID) (*storage.HabitRow, error) {
	return m.habits.GetHabit(ctx, id)
}

func (m *MemoryStorage) UpsertCompletion(ctx context.Context, row *storage.HabitCompletionRow) error {
	return m.habits.UpsertCompletion(ctx, row)
}

func (m *MemoryStorage) DeleteCompletion(ctx context.Context, habitID uuid.UUID, date string) error {
	return m.habits.DeleteCompletion(ctx, habitID, date)
}

func (m *MemoryStorage) ListCompletionsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.HabitCompletionRow, error) {
	return m.habits.ListCompletionsByDate(ctx, ownerUserID, date)
}
