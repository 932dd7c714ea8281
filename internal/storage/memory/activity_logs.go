package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

// ActivityLogsMemoryStorage — in-memory реализация ActivityLogsStorage
type ActivityLogsMemoryStorage struct {
	mu   sync.RWMutex
	logs map[uuid.UUID]storage.ActivityLogRow
}

func NewActivityLogsMemoryStorage() *ActivityLogsMemoryStorage {
	return &ActivityLogsMemoryStorage{
		logs: make(map[uuid.UUID]storage.ActivityLogRow),
	}
}

func (s *ActivityLogsMemoryStorage) InsertActivityLog(ctx context.Context, row *storage.ActivityLogRow) error {
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

func (s *ActivityLogsMemoryStorage) ListActivityLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.ActivityLogRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []storage.ActivityLogRow
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
