package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sleepLogsStorage struct {
	pool *pgxpool.Pool
}

func newSleepLogsStorage(pool *pgxpool.Pool) *sleepLogsStorage {
	return &sleepLogsStorage{pool: pool}
}

func (s *sleepLogsStorage) InsertSleepLog(ctx context.Context, row *storage.SleepLogRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sleep_logs (id, owner_user_id, date, bed_time, wake_time, quality, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		row.ID,
		row.OwnerUserID,
		row.Date,
		row.BedTime,
		row.WakeTime,
		row.Quality,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sleep log: %w", err)
	}

	return nil
}

func (s *sleepLogsStorage) ListSleepLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.SleepLogRow, error) {
	query := `
		SELECT id, owner_user_id, date, bed_time, wake_time, quality, created_at
		FROM sleep_logs
		WHERE owner_user_id = $1 AND date = $2
		ORDER BY created_at
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep logs: %w", err)
	}
	defer rows.Close()

	var result []storage.SleepLogRow
	for rows.Next() {
		var row storage.SleepLogRow
		if err := rows.Scan(
			&row.ID,
			&row.OwnerUserID,
			&row.Date,
			&row.BedTime,
			&row.WakeTime,
			&row.Quality,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sleep log: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sleep logs: %w", err)
	}

	return result, nil
}
