package changefeed

import (
	"sync"

	"github.com/google/uuid"
)

// Event types
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// Tables with change feeds
const (
	TableNutritionLogs = "nutrition_logs"
	TableSleepLogs     = "sleep_logs"
	TableActivityLogs  = "activity_logs"
	TableHabits        = "habits"
)

// Event — уведомление об изменении строки
type Event struct {
	Table       string
	Type        string // insert | update | delete
	OwnerUserID string
	RowID       uuid.UUID
	Date        string // YYYY-MM-DD of the affected row, if dated
}

// Subscription is a single consumer of change events for one (table, user) scope.
// Events are delivered on C; the channel is closed by Close.
type Subscription struct {
	C chan Event

	id          int
	table       string
	ownerUserID string
	bus         *Bus
	once        sync.Once
}

// Close отписывает подписчика и закрывает канал. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.remove(s.id)
		close(s.C)
	})
}

// Bus fans row-change events out to per-user subscriptions.
// Delivery is at-least-once from the consumer's point of view: a full channel
// means a notification is already pending, and one pending event is enough to
// force a full recompute downstream.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]*Subscription
	nextID int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]*Subscription)}
}

// Subscribe registers a consumer for change events on table scoped to ownerUserID.
func (b *Bus) Subscribe(table string, ownerUserID string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		C:           make(chan Event, 16),
		id:          b.nextID,
		table:       table,
		ownerUserID: ownerUserID,
		bus:         b,
	}
	b.subs[sub.id] = sub

	return sub
}

// Publish delivers an event to every matching subscription without blocking.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if sub.table != evt.Table || sub.ownerUserID != evt.OwnerUserID {
			continue
		}
		select {
		case sub.C <- evt:
		default:
			// Queue full: a pending event already triggers the same recompute.
		}
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}
