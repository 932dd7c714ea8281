package memory

import (
	"context"
	"sync"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

// GoalsMemoryStorage — in-memory реализация GoalsStorage
type GoalsMemoryStorage struct {
	mu    sync.RWMutex
	goals map[string]storage.GoalRow // key: ownerUserID + ":" + category
}

func NewGoalsMemoryStorage() *GoalsMemoryStorage {
	return &GoalsMemoryStorage{
		goals: make(map[string]storage.GoalRow),
	}
}

func goalKey(ownerUserID, category string) string {
	return ownerUserID + ":" + category
}

func (s *GoalsMemoryStorage) GetGoal(ctx context.Context, ownerUserID string, category string) (*storage.GoalRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.goals[goalKey(ownerUserID, category)]
	if !ok {
		return nil, nil // not found
	}

	return &row, nil
}

func (s *GoalsMemoryStorage) GoalExists(ctx context.Context, ownerUserID string, category string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.goals[goalKey(ownerUserID, category)]
	return ok, nil
}

func (s *GoalsMemoryStorage) UpsertGoal(ctx context.Context, ownerUserID string, category string, upsert storage.GoalUpsert) (*storage.GoalRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := goalKey(ownerUserID, category)

	row, ok := s.goals[key]
	if !ok {
		row = storage.GoalRow{
			ID:          uuid.New(),
			OwnerUserID: ownerUserID,
			Category:    category,
			CreatedAt:   now,
		}
	}

	row.CalorieGoal = upsert.CalorieGoal
	row.ProteinGoal = upsert.ProteinGoal
	row.CarbGoal = upsert.CarbGoal
	row.FatGoal = upsert.FatGoal
	row.UpdatedAt = now

	s.goals[key] = row

	return &row, nil
}
