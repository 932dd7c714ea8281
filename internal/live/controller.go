// Package live keeps a user's displayed daily totals in sync with the
// nutrition log change feed.
package live

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/nutrition"
)

// State контроллера живого обновления
type State int32

const (
	StateIdle State = iota
	StateSubscribed
	StateError
)

// Aggregator пересчитывает дневные суммы.
type Aggregator interface {
	ComputeDailyTotals(ctx context.Context, ownerUserID, date string) (nutrition.DailyTotals, error)
}

// Publisher получает результат пересчёта. При ошибке выборки подписчик
// оставляет последние успешные суммы на месте, поэтому ошибка идёт
// отдельным вызовом, а не нулевыми суммами.
type Publisher interface {
	PublishTotals(date string, totals nutrition.DailyTotals)
	PublishError(date string, err error)
}

// Controller подписывается на изменения логов одного пользователя и
// пересчитывает суммы активного дня. Каждая смена дня выдаёт новый
// монотонный токен; завершившийся пересчёт с устаревшим токеном
// отбрасывается, чтобы поздний ответ не перетёр текущий день.
type Controller struct {
	ownerUserID string
	bus         *changefeed.Bus
	aggregator  Aggregator
	publisher   Publisher

	ctx    context.Context
	sub    *changefeed.Subscription
	token  atomic.Int64
	state  atomic.Int32
	closed atomic.Bool

	mu         sync.Mutex
	activeDate string
}

func NewController(bus *changefeed.Bus, aggregator Aggregator, publisher Publisher, ownerUserID string) *Controller {
	return &Controller{
		ownerUserID: ownerUserID,
		bus:         bus,
		aggregator:  aggregator,
		publisher:   publisher,
	}
}

// Start подписывается на change feed и запускает цикл потребителя.
func (c *Controller) Start(ctx context.Context) {
	c.ctx = ctx
	c.sub = c.bus.Subscribe(changefeed.TableNutritionLogs, c.ownerUserID)
	c.state.Store(int32(StateSubscribed))
	go c.consume()
}

// SetActiveDate переключает активный день и запускает пересчёт.
func (c *Controller) SetActiveDate(date string) {
	token := c.token.Add(1)

	c.mu.Lock()
	c.activeDate = date
	c.mu.Unlock()

	go c.recompute(date, token)
}

// Refetch повторяет пересчёт текущего дня. Вызывается только по явному
// действию пользователя, автоматических повторов после ошибки нет.
func (c *Controller) Refetch() {
	c.mu.Lock()
	date := c.activeDate
	c.mu.Unlock()

	go c.recompute(date, c.token.Load())
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

// Close отписывается от шины. Safe to call more than once.
func (c *Controller) Close() {
	c.closed.Store(true)
	if c.sub != nil {
		c.sub.Close()
	}
	c.state.Store(int32(StateIdle))
}

func (c *Controller) consume() {
	for evt := range c.sub.C {
		c.mu.Lock()
		date := c.activeDate
		c.mu.Unlock()

		if date == "" {
			continue
		}
		if evt.Date != "" && evt.Date != date {
			continue
		}
		c.recompute(date, c.token.Load())
	}

	// Канал закрыт. Штатное закрытие идёт через Close; всё остальное —
	// обрыв подписки, фиксируем ошибочное состояние без авто-переподписки.
	if !c.closed.Load() {
		c.state.Store(int32(StateError))
		log.Printf("live: change feed closed unexpectedly for user %s", c.ownerUserID)
	}
}

func (c *Controller) recompute(date string, token int64) {
	if date == "" {
		return
	}

	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	totals, err := c.aggregator.ComputeDailyTotals(ctx, c.ownerUserID, date)

	// Пока считали, пользователь мог переключить день.
	if token != c.token.Load() {
		return
	}

	if err != nil {
		c.publisher.PublishError(date, err)
		return
	}
	c.publisher.PublishTotals(date, totals)
}
