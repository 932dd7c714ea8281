package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type nutritionLogsStorage struct {
	pool *pgxpool.Pool
}

func newNutritionLogsStorage(pool *pgxpool.Pool) *nutritionLogsStorage {
	return &nutritionLogsStorage{pool: pool}
}

func (s *nutritionLogsStorage) InsertLog(ctx context.Context, row *storage.NutritionLogRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.LoggedAt.IsZero() {
		row.LoggedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO nutrition_logs (id, owner_user_id, date, calories, protein, carbs, fat, meal_name, meal_type, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		row.ID,
		row.OwnerUserID,
		row.Date,
		row.Calories,
		row.Protein,
		row.Carbs,
		row.Fat,
		row.MealName,
		row.MealType,
		row.LoggedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert nutrition log: %w", err)
	}

	return nil
}

func (s *nutritionLogsStorage) ListLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.NutritionLogRow, error) {
	query := `
		SELECT id, owner_user_id, date, calories, protein, carbs, fat, meal_name, meal_type, logged_at
		FROM nutrition_logs
		WHERE owner_user_id = $1 AND date = $2
		ORDER BY logged_at
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition logs: %w", err)
	}
	defer rows.Close()

	var result []storage.NutritionLogRow
	for rows.Next() {
		var row storage.NutritionLogRow
		if err := rows.Scan(
			&row.ID,
			&row.OwnerUserID,
			&row.Date,
			&row.Calories,
			&row.Protein,
			&row.Carbs,
			&row.Fat,
			&row.MealName,
			&row.MealType,
			&row.LoggedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan nutrition log: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nutrition logs: %w", err)
	}

	return result, nil
}
