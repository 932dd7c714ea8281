package habits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidDate   = errors.New("invalid date format")
	ErrEmptyName     = errors.New("habit name must not be empty")
	ErrHabitNotFound = errors.New("habit not found")
)

// Storage defines the interface for habit storage operations
type Storage interface {
	CreateHabit(ctx context.Context, row *storage.HabitRow) error
	ListHabits(ctx context.Context, ownerUserID string) ([]storage.HabitRow, error)
	GetHabit(ctx context.Context, id uuid.UUID) (*storage.HabitRow, error)
	UpsertCompletion(ctx context.Context, row *storage.HabitCompletionRow) error
	DeleteCompletion(ctx context.Context, habitID uuid.UUID, date string) error
	ListCompletionsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.HabitCompletionRow, error)
}

// Service handles habit business logic.
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

// CreateHabit creates a new habit for the user.
func (s *Service) CreateHabit(ctx context.Context, ownerUserID string, req CreateHabitRequest) (*HabitDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	row := &storage.HabitRow{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Icon:        req.Icon,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.storage.CreateHabit(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(changefeed.Event{
			Table:       changefeed.TableHabits,
			Type:        changefeed.EventInsert,
			OwnerUserID: ownerUserID,
			RowID:       row.ID,
		})
	}

	return &HabitDTO{ID: row.ID, Name: row.Name, Icon: row.Icon, CreatedAt: row.CreatedAt}, nil
}

// ListForDate returns the user's habits with completion marks for a day.
func (s *Service) ListForDate(ctx context.Context, ownerUserID string, date string) ([]HabitDTO, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	rows, err := s.storage.ListHabits(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	completions, err := s.storage.ListCompletionsByDate(ctx, ownerUserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	done := make(map[uuid.UUID]bool, len(completions))
	for _, c := range completions {
		done[c.HabitID] = true
	}

	dtos := make([]HabitDTO, len(rows))
	for i, row := range rows {
		dtos[i] = HabitDTO{
			ID:        row.ID,
			Name:      row.Name,
			Icon:      row.Icon,
			Completed: done[row.ID],
			CreatedAt: row.CreatedAt,
		}
	}

	return dtos, nil
}

// SetCompleted marks or unmarks a habit for a day. Marking an already
// completed habit again is a no-op, not an error.
func (s *Service) SetCompleted(ctx context.Context, ownerUserID string, habitID uuid.UUID, date string, completed bool) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}

	habit, err := s.storage.GetHabit(ctx, habitID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrHabitNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load habit: %w", err)
	}
	// Чужая привычка выглядит как несуществующая.
	if habit.OwnerUserID != ownerUserID {
		return ErrHabitNotFound
	}

	if completed {
		err = s.storage.UpsertCompletion(ctx, &storage.HabitCompletionRow{
			ID:          uuid.New(),
			HabitID:     habitID,
			OwnerUserID: ownerUserID,
			Date:        date,
			CreatedAt:   time.Now().UTC(),
		})
	} else {
		err = s.storage.DeleteCompletion(ctx, habitID, date)
	}
	if err != nil {
		return fmt.Errorf("failed to update completion: %w", err)
	}

	if s.bus != nil {
		eventType := changefeed.EventInsert
		if !completed {
			eventType = changefeed.EventDelete
		}
		s.bus.Publish(changefeed.Event{
			Table:       changefeed.TableHabits,
			Type:        eventType,
			OwnerUserID: ownerUserID,
			RowID:       habitID,
			Date:        date,
		})
	}

	return nil
}

// DailyCompletion counts completed habits for a day.
func (s *Service) DailyCompletion(ctx context.Context, ownerUserID string, date string) (DailyCompletion, error) {
	habits, err := s.ListForDate(ctx, ownerUserID, date)
	if err != nil {
		return DailyCompletion{}, err
	}

	result := DailyCompletion{Total: len(habits)}
	for _, h := range habits {
		if h.Completed {
			result.Completed++
		}
	}
	return result, nil
}
