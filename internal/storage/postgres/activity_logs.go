package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type activityLogsStorage struct {
	pool *pgxpool.Pool
}

func newActivityLogsStorage(pool *pgxpool.Pool) *activityLogsStorage {
	return &activityLogsStorage{pool: pool}
}

func (s *activityLogsStorage) InsertActivityLog(ctx context.Context, row *storage.ActivityLogRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO activity_logs (id, owner_user_id, date, activity_type, duration_min, calories_burned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		row.ID,
		row.OwnerUserID,
		row.Date,
		row.ActivityType,
		row.DurationMin,
		row.CaloriesBurned,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

func (s *activityLogsStorage) ListActivityLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.ActivityLogRow, error) {
	query := `
		SELECT id, owner_user_id, date, activity_type, duration_min, calories_burned, created_at
		FROM activity_logs
		WHERE owner_user_id = $1 AND date = $2
		ORDER BY created_at
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	var result []storage.ActivityLogRow
	for rows.Next() {
		var row storage.ActivityLogRow
		if err := rows.Scan(
			&row.ID,
			&row.OwnerUserID,
			&row.Date,
			&row.ActivityType,
			&row.DurationMin,
			&row.CaloriesBurned,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity logs: %w", err)
	}

	return result, nil
}
