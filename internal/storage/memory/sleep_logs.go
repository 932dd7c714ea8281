package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

// SleepLogsMemoryStorage — in-memory реализация SleepLogsStorage
type SleepLogsMemoryStorage struct {
	mu   sync.RWMutex
	logs map[uuid.UUID]storage.SleepLogRow
}

func NewSleepLogsMemoryStorage() *SleepLogsMemoryStorage {
	return &SleepLogsMemoryStorage{
		logs: make(map[uuid.UUID]storage.SleepLogRow),
	}
}

func (s *SleepLogsMemoryStorage) InsertSleepLog(ctx context.Context, row *storage.SleepLogRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	s.logs[row.ID] = *row

	return nil
}

func (s *SleepLogsMemoryStorage) ListSleepLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.SleepLogRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []storage.SleepLogRow
	for _, row := range s.logs {
		if row.OwnerUserID == ownerUserID && row.Date == date {
			result = append(result, row)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
