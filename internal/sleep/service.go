package sleep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidDate    = errors.New("invalid date format")
	ErrInvalidTime    = errors.New("invalid time format")
	ErrInvalidQuality = errors.New("quality must be between 1 and 5")
)

// Storage defines the interface for sleep log storage operations
type Storage interface {
	InsertSleepLog(ctx context.Context, row *storage.SleepLogRow) error
	ListSleepLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.SleepLogRow, error)
}

// Service handles sleep log business logic.
type Service struct {
	storage Storage
	bus     *changefeed.Bus
}

func NewService(storage Storage, bus *changefeed.Bus) *Service {
	return &Service{
		storage: storage,
		bus:     bus,
	}
}

// CreateLog stores a sleep entry keyed on the wake-up day. A bed time at or
// after the wake time means the user fell asleep the previous evening.
func (s *Service) CreateLog(ctx context.Context, ownerUserID string, req CreateSleepLogRequest) (*SleepLogDTO, error) {
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	bedClock, err := time.Parse("15:04", req.BedTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	wakeClock, err := time.Parse("15:04", req.WakeTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	if req.Quality < 1 || req.Quality > 5 {
		return nil, ErrInvalidQuality
	}

	wake := time.Date(day.Year(), day.Month(), day.Day(), wakeClock.Hour(), wakeClock.Minute(), 0, 0, time.UTC)
	bed := time.Date(day.Year(), day.Month(), day.Day(), bedClock.Hour(), bedClock.Minute(), 0, 0, time.UTC)
	if !bed.Before(wake) {
		bed = bed.AddDate(0, 0, -1)
	}

	row := &storage.SleepLogRow{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		Date:        date,
		BedTime:     bed,
		WakeTime:    wake,
		Quality:     req.Quality,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.storage.InsertSleepLog(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to insert sleep log: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(changefeed.Event{
			Table:       changefeed.TableSleepLogs,
			Type:        changefeed.EventInsert,
			OwnerUserID: ownerUserID,
			RowID:       row.ID,
			Date:        row.Date,
		})
	}

	dto := toDTO(row)
	return &dto, nil
}

// ListLogs returns the user's sleep entries for a wake-up day.
func (s *Service) ListLogs(ctx context.Context, ownerUserID string, date string) ([]SleepLogDTO, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	rows, err := s.storage.ListSleepLogsByDate(ctx, ownerUserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep logs: %w", err)
	}

	dtos := make([]SleepLogDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toDTO(&row)
	}

	return dtos, nil
}

// TotalHours sums the slept hours across all entries for a wake-up day.
func (s *Service) TotalHours(ctx context.Context, ownerUserID string, date string) (float64, error) {
	logs, err := s.ListLogs(ctx, ownerUserID, date)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, l := range logs {
		total += l.Hours
	}
	return total, nil
}

func toDTO(row *storage.SleepLogRow) SleepLogDTO {
	return SleepLogDTO{
		ID:       row.ID,
		Date:     row.Date,
		BedTime:  row.BedTime,
		WakeTime: row.WakeTime,
		Hours:    row.WakeTime.Sub(row.BedTime).Hours(),
		Quality:  row.Quality,
	}
}
