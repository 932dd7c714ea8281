package postgres

import (
	"context"
	"fmt"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type goalsStorage struct {
	pool *pgxpool.Pool
}

func newGoalsStorage(pool *pgxpool.Pool) *goalsStorage {
	return &goalsStorage{pool: pool}
}

func (s *goalsStorage) GetGoal(ctx context.Context, ownerUserID string, category string) (*storage.GoalRow, error) {
	query := `
		SELECT id, owner_user_id, category, calorie_goal, protein_goal, carb_goal, fat_goal, created_at, updated_at
		FROM nutrition_goals
		WHERE owner_user_id = $1 AND category = $2
	`

	var row storage.GoalRow
	err := s.pool.QueryRow(ctx, query, ownerUserID, category).Scan(
		&row.ID,
		&row.OwnerUserID,
		&row.Category,
		&row.CalorieGoal,
		&row.ProteinGoal,
		&row.CarbGoal,
		&row.FatGoal,
		&row.CreatedAt,
		&row.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return &row, nil
}

func (s *goalsStorage) GoalExists(ctx context.Context, ownerUserID string, category string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM nutrition_goals WHERE owner_user_id = $1 AND category = $2
		)
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, ownerUserID, category).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check goal existence: %w", err)
	}

	return exists, nil
}

func (s *goalsStorage) UpsertGoal(ctx context.Context, ownerUserID string, category string, upsert storage.GoalUpsert) (*storage.GoalRow, error) {
	// Unique index on (owner_user_id, category) makes a concurrent double-create
	// degrade to an update instead of a duplicate row.
	query := `
		INSERT INTO nutrition_goals (owner_user_id, category, calorie_goal, protein_goal, carb_goal, fat_goal)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_user_id, category)
		DO UPDATE SET
			calorie_goal = EXCLUDED.calorie_goal,
			protein_goal = EXCLUDED.protein_goal,
			carb_goal = EXCLUDED.carb_goal,
			fat_goal = EXCLUDED.fat_goal,
			updated_at = now()
		RETURNING id, owner_user_id, category, calorie_goal, protein_goal, carb_goal, fat_goal, created_at, updated_at
	`

	var row storage.GoalRow
	err := s.pool.QueryRow(ctx, query,
		ownerUserID,
		category,
		upsert.CalorieGoal,
		upsert.ProteinGoal,
		upsert.CarbGoal,
		upsert.FatGoal,
	).Scan(
		&row.ID,
		&row.OwnerUserID,
		&row.Category,
		&row.CalorieGoal,
		&row.ProteinGoal,
		&row.CarbGoal,
		&row.FatGoal,
		&row.CreatedAt,
		&row.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert goal: %w", err)
	}

	return &row, nil
}
