package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

// NutritionLogsMemoryStorage — in-memory реализация NutritionLogsStorage
type NutritionLogsMemoryStorage struct {
	mu   sync.RWMutex
	logs map[uuid.UUID]storage.NutritionLogRow
}

func NewNutritionLogsMemoryStorage() *NutritionLogsMemoryStorage {
	return &NutritionLogsMemoryStorage{
		logs: make(map[uuid.UUID]storage.NutritionLogRow),
	}
}

func (s *NutritionLogsMemoryStorage) InsertLog(ctx context.Context, row *storage.NutritionLogRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.LoggedAt.IsZero() {
		row.LoggedAt = time.Now().UTC()
	}

	s.logs[row.ID] = *row

	return nil
}

func (s *NutritionLogsMemoryStorage) ListLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.NutritionLogRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []storage.NutritionLogRow
	for _, row := range s.logs {
		if row.OwnerUserID == ownerUserID && row.Date == date {
			result = append(result, row)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].LoggedAt.Before(result[j].LoggedAt)
	})

	return result, nil
}
