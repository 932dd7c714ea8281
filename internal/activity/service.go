package activity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidDate         = errors.New("invalid date format")
	ErrInvalidActivityType = errors.New("invalid activity type")
	ErrInvalidValue        = errors.New("duration and calories must be finite and non-negative")
)

// Storage defines the interface for activity log storage operations
type Storage interface {
	InsertActivityLog(ctx context.Context, row *storage.ActivityLogRow) error
	ListActivityLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.ActivityLogRow, error)
}

// Service handles activity log business logic.
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

// CreateLog validates and stores an activity entry.
func (s *Service) CreateLog(ctx context.Context, ownerUserID string, req CreateLogRequest) (*ActivityLogDTO, error) {
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	if !isValidActivityType(req.ActivityType) {
		return nil, ErrInvalidActivityType
	}

	if req.DurationMin < 0 {
		return nil, ErrInvalidValue
	}
	if math.IsNaN(req.CaloriesBurned) || math.IsInf(req.CaloriesBurned, 0) || req.CaloriesBurned < 0 {
		return nil, ErrInvalidValue
	}

	row := &storage.ActivityLogRow{
		ID:             uuid.New(),
		OwnerUserID:    ownerUserID,
		Date:           date,
		ActivityType:   req.ActivityType,
		DurationMin:    req.DurationMin,
		CaloriesBurned: req.CaloriesBurned,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.storage.InsertActivityLog(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to insert activity log: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(changefeed.Event{
			Table:       changefeed.TableActivityLogs,
			Type:        changefeed.EventInsert,
			OwnerUserID: ownerUserID,
			RowID:       row.ID,
			Date:        row.Date,
		})
	}

	dto := toDTO(row)
	return &dto, nil
}

// ListLogs returns the user's activity entries for a calendar day.
func (s *Service) ListLogs(ctx context.Context, ownerUserID string, date string) ([]ActivityLogDTO, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	rows, err := s.storage.ListActivityLogsByDate(ctx, ownerUserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}

	dtos := make([]ActivityLogDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toDTO(&row)
	}

	return dtos, nil
}

// DailySummary sums duration and burned calories for a calendar day.
func (s *Service) DailySummary(ctx context.Context, ownerUserID string, date string) (DailyActivity, error) {
	logs, err := s.ListLogs(ctx, ownerUserID, date)
	if err != nil {
		return DailyActivity{}, err
	}

	var summary DailyActivity
	for _, l := range logs {
		summary.DurationMin += l.DurationMin
		summary.CaloriesBurned += l.CaloriesBurned
	}
	return summary, nil
}

func toDTO(row *storage.ActivityLogRow) ActivityLogDTO {
	return ActivityLogDTO{
		ID:             row.ID,
		Date:           row.Date,
		ActivityType:   row.ActivityType,
		DurationMin:    row.DurationMin,
		CaloriesBurned: row.CaloriesBurned,
		CreatedAt:      row.CreatedAt,
	}
}

func isValidActivityType(t string) bool {
	for _, valid := range ValidActivityTypes {
		if t == valid {
			return true
		}
	}
	return false
}
