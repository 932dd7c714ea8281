package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

// HabitsMemoryStorage — in-memory реализация HabitsStorage
type HabitsMemoryStorage struct {
	mu          sync.RWMutex
	habits      map[uuid.UUID]storage.HabitRow
	completions map[string]storage.HabitCompletionRow // key: habitID + ":" + date
}

func NewHabitsMemoryStorage() *HabitsMemoryStorage {
	return &HabitsMemoryStorage{
		habits:      make(map[uuid.UUID]storage.HabitRow),
		completions: make(map[string]storage.HabitCompletionRow),
	}
}

func completionKey(habitID uuid.UUID, date string) string {
	return habitID.String() + ":" + date
}

func (s *HabitsMemoryStorage) CreateHabit(ctx context.Context, row *storage.HabitRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	s.habits[row.ID] = *row

	return nil
}

func (s *HabitsMemoryStorage) ListHabits(ctx context.Context, ownerUserID string) ([]storage.HabitRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []storage.HabitRow
	for _, row := range s.habits {
		if row.OwnerUserID == ownerUserID {
			result = append(result, row)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (s *HabitsMemoryStorage) GetHabit(ctx context.Context, id uuid.UUID) (*storage.HabitRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.habits[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &row, nil
}

func (s *HabitsMemoryStorage) UpsertCompletion(ctx context.Context, row *storage.HabitCompletionRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := completionKey(row.HabitID, row.Date)
	if existing, ok := s.completions[key]; ok {
		*row = existing
		return nil
	}

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	s.completions[key] = *row

	return nil
}

func (s *HabitsMemoryStorage) DeleteCompletion(ctx context.Context, habitID uuid.UUID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.completions, completionKey(habitID, date))

	return nil
}

func (s *HabitsMemoryStorage) ListCompletionsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.HabitCompletionRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []storage.HabitCompletionRow
	for _, row := range s.completions {
		if row.OwnerUserID == ownerUserID && row.Date == date {
			result = append(result, row)
		}
	}

	return result, nil
}
