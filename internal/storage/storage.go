package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращают бэкенды, когда строки нет.
var ErrNotFound = errors.New("row not found")

// NutritionLogsStorage — интерфейс для работы с записями журнала питания
type NutritionLogsStorage interface {
	// InsertLog добавляет запись журнала (записи иммутабельны после создания)
	InsertLog(ctx context.Context, row *NutritionLogRow) error

	// ListLogsByDate возвращает все записи пользователя за календарный день
	ListLogsByDate(ctx context.Context, ownerUserID string, date string) ([]NutritionLogRow, error)
}

// NutritionLogRow — строка из nutrition_logs
type NutritionLogRow struct {
	ID          uuid.UUID
	OwnerUserID string
	Date        string // YYYY-MM-DD
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	MealName    string
	MealType    string // breakfast, lunch, dinner, snack
	LoggedAt    time.Time
}

// GoalsStorage — интерфейс для работы с целями (unique per owner+category)
type GoalsStorage interface {
	// GetGoal returns the goal for (owner, category). nil, nil when absent.
	GetGoal(ctx context.Context, ownerUserID string, category string) (*GoalRow, error)

	// GoalExists reports whether a goal row exists. Absence is false, not an error.
	GoalExists(ctx context.Context, ownerUserID string, category string) (bool, error)

	// UpsertGoal creates or updates the goal keyed on (owner, category).
	UpsertGoal(ctx context.Context, ownerUserID string, category string, upsert GoalUpsert) (*GoalRow, error)
}

// GoalRow — строка из nutrition_goals
type GoalRow struct {
	ID          uuid.UUID
	OwnerUserID string
	Category    string
	CalorieGoal float64
	ProteinGoal float64
	CarbGoal    float64
	FatGoal     float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GoalUpsert is used for creating/updating goals.
type GoalUpsert struct {
	CalorieGoal float64
	ProteinGoal float64
	CarbGoal    float64
	FatGoal     float64
}

// SleepLogsStorage manages manually logged sleep entries.
type SleepLogsStorage interface {
	// InsertSleepLog добавляет запись о сне
	InsertSleepLog(ctx context.Context, row *SleepLogRow) error

	// ListSleepLogsByDate возвращает записи пользователя за день
	ListSleepLogsByDate(ctx context.Context, ownerUserID string, date string) ([]SleepLogRow, error)
}

// SleepLogRow — строка из sleep_logs
type SleepLogRow struct {
	ID          uuid.UUID
	OwnerUserID string
	Date        string    // YYYY-MM-DD (the wake-up day)
	BedTime     time.Time
	WakeTime    time.Time
	Quality     int // 1..5
	CreatedAt   time.Time
}

// ActivityLogsStorage manages workout/activity entries.
type ActivityLogsStorage interface {
	// InsertActivityLog добавляет запись об активности
	InsertActivityLog(ctx context.Context, row *ActivityLogRow) error

	// ListActivityLogsByDate возвращает записи пользователя за день
	ListActivityLogsByDate(ctx context.Context, ownerUserID string, date string) ([]ActivityLogRow, error)
}

// ActivityLogRow — строка из activity_logs
type ActivityLogRow struct {
	ID             uuid.UUID
	OwnerUserID    string
	Date           string // YYYY-MM-DD
	ActivityType   string
	DurationMin    int
	CaloriesBurned float64
	CreatedAt      time.Time
}

// HabitsStorage manages habits and their per-day completions.
type HabitsStorage interface {
	// CreateHabit создаёт привычку
	CreateHabit(ctx context.Context, row *HabitRow) error

	// ListHabits возвращает привычки пользователя
	ListHabits(ctx context.Context, ownerUserID string) ([]HabitRow, error)

	// GetHabit возвращает привычку по ID
	GetHabit(ctx context.Context, id uuid.UUID) (*HabitRow, error)

	// UpsertCompletion marks a habit done for a date (unique habit_id+date).
	UpsertCompletion(ctx context.Context, row *HabitCompletionRow) error

	// DeleteCompletion removes the completion mark for a date.
	DeleteCompletion(ctx context.Context, habitID uuid.UUID, date string) error

	// ListCompletionsByDate returns all completions of the user's habits for a date.
	ListCompletionsByDate(ctx context.Context, ownerUserID string, date string) ([]HabitCompletionRow, error)
}

// HabitRow — строка из habits
type HabitRow struct {
	ID          uuid.UUID
	OwnerUserID string
	Name        string
	Icon        string
	CreatedAt   time.Time
}

// HabitCompletionRow — строка из habit_completions
type HabitCompletionRow struct {
	ID          uuid.UUID
	HabitID     uuid.UUID
	OwnerUserID string
	Date        string // YYYY-MM-DD
	CreatedAt   time.Time
}

// Storage — корневой интерфейс хранилища
type Storage interface {
	NutritionLogsStorage
	GoalsStorage
	SleepLogsStorage
	ActivityLogsStorage
	HabitsStorage

	// Close закрывает соединение (для Postgres)
	Close() error
}
