package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type habitsStorage struct {
	pool *pgxpool.Pool
}

func newHabitsStorage(pool *pgxpool.Pool) *habitsStorage {
	return &habitsStorage{pool: pool}
}

func (s *habitsStorage) CreateHabit(ctx context.Context, row *storage.HabitRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO habits (id, owner_user_id, name, icon, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query, row.ID, row.OwnerUserID, row.Name, row.Icon, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	return nil
}

func (s *habitsStorage) ListHabits(ctx context.Context, ownerUserID string) ([]storage.HabitRow, error) {
	query := `
		SELECT id, owner_user_id, name, icon, created_at
		FROM habits
		WHERE owner_user_id = $1
		ORDER BY created_at
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var result []storage.HabitRow
	for rows.Next() {
		var row storage.HabitRow
		if err := rows.Scan(&row.ID, &row.OwnerUserID, &row.Name, &row.Icon, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	return result, nil
}

func (s *habitsStorage) GetHabit(ctx context.Context, id uuid.UUID) (*storage.HabitRow, error) {
	query := `
		SELECT id, owner_user_id, name, icon, created_at
		FROM habits
		WHERE id = $1
	`

	var row storage.HabitRow
	err := s.pool.QueryRow(ctx, query, id).Scan(&row.ID, &row.OwnerUserID, &row.Name, &row.Icon, &row.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return &row, nil
}

func (s *habitsStorage) UpsertCompletion(ctx context.Context, row *storage.HabitCompletionRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO habit_completions (id, habit_id, owner_user_id, date, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (habit_id, date) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query, row.ID, row.HabitID, row.OwnerUserID, row.Date, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert habit completion: %w", err)
	}

	return nil
}

func (s *habitsStorage) DeleteCompletion(ctx context.Context, habitID uuid.UUID, date string) error {
	query := `DELETE FROM habit_completions WHERE habit_id = $1 AND date = $2`

	_, err := s.pool.Exec(ctx, query, habitID, date)
	if err != nil {
		return fmt.Errorf("failed to delete habit completion: %w", err)
	}

	return nil
}

func (s *habitsStorage) ListCompletionsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.HabitCompletionRow, error) {
	query := `
		SELECT id, habit_id, owner_user_id, date, created_at
		FROM habit_completions
		WHERE owner_user_id = $1 AND date = $2
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit completions: %w", err)
	}
	defer rows.Close()

	var result []storage.HabitCompletionRow
	for rows.Next() {
		var row storage.HabitCompletionRow
		if err := rows.Scan(&row.ID, &row.HabitID, &row.OwnerUserID, &row.Date, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit completion: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habit completions: %w", err)
	}

	return result, nil
}
