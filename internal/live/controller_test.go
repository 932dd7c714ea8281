package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/nutrition"
)

type fakeAggregator struct {
	mu     sync.Mutex
	totals map[string]nutrition.DailyTotals
	err    error
	gates  map[string]chan struct{}
	calls  int
}

func newFakeAggregator() *fakeAggregator {
	return &fakeAggregator{
		totals: make(map[string]nutrition.DailyTotals),
		gates:  make(map[string]chan struct{}),
	}
}

func (a *fakeAggregator) gate(date string) chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	ch := make(chan struct{})
	a.gates[date] = ch
	return ch
}

func (a *fakeAggregator) ComputeDailyTotals(ctx context.Context, ownerUserID, date string) (nutrition.DailyTotals, error) {
	a.mu.Lock()
	a.calls++
	gate := a.gates[date]
	err := a.err
	totals := a.totals[date]
	a.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nutrition.DailyTotals{}, err
	}
	return totals, nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	results []publishedResult
	errs    []error
}

type publishedResult struct {
	date   string
	totals nutrition.DailyTotals
}

func (p *recordingPublisher) PublishTotals(date string, totals nutrition.DailyTotals) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, publishedResult{date: date, totals: totals})
}

func (p *recordingPublisher) PublishError(date string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, err)
}

func (p *recordingPublisher) last() (publishedResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.results) == 0 {
		return publishedResult{}, false
	}
	return p.results[len(p.results)-1], true
}

func (p *recordingPublisher) waitForResults(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		count := len(p.results)
		p.mu.Unlock()
		if count >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d published results", n)
}

func TestSetActiveDatePublishesTotals(t *testing.T) {
	aggregator := newFakeAggregator()
	aggregator.totals["2024-01-05"] = nutrition.DailyTotals{Calories: 1000, Protein: 50, Carbs: 120, Fat: 25}
	publisher := &recordingPublisher{}

	controller := NewController(changefeed.NewBus(), aggregator, publisher, "user-1")
	controller.Start(context.Background())
	defer controller.Close()

	controller.SetActiveDate("2024-01-05")
	publisher.waitForResults(t, 1)

	result, _ := publisher.last()
	if result.date != "2024-01-05" || result.totals.Calories != 1000 {
		t.Fatalf("unexpected published result: %+v", result)
	}
	if controller.State() != StateSubscribed {
		t.Fatalf("expected StateSubscribed, got %v", controller.State())
	}
}

func TestLateResponseForPreviousDayIsDiscarded(t *testing.T) {
	aggregator := newFakeAggregator()
	aggregator.totals["2024-01-05"] = nutrition.DailyTotals{Calories: 1111}
	aggregator.totals["2024-01-06"] = nutrition.DailyTotals{Calories: 2222}
	jan5Gate := aggregator.gate("2024-01-05")
	publisher := &recordingPublisher{}

	controller := NewController(changefeed.NewBus(), aggregator, publisher, "user-1")
	controller.Start(context.Background())
	defer controller.Close()

	// Jan 5 fetch hangs on the gate; the user switches to Jan 6 meanwhile.
	controller.SetActiveDate("2024-01-05")
	controller.SetActiveDate("2024-01-06")
	publisher.waitForResults(t, 1)

	// Now let the stale Jan 5 fetch resolve.
	close(jan5Gate)
	time.Sleep(50 * time.Millisecond)

	result, ok := publisher.last()
	if !ok {
		t.Fatal("expected a published result")
	}
	if result.date != "2024-01-06" || result.totals.Calories != 2222 {
		t.Fatalf("stale response leaked through: %+v", result)
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	for _, r := range publisher.results {
		if r.date == "2024-01-05" {
			t.Fatalf("discarded fetch was published: %+v", r)
		}
	}
}

func TestChangeEventTriggersRecompute(t *testing.T) {
	aggregator := newFakeAggregator()
	aggregator.totals["2024-01-05"] = nutrition.DailyTotals{Calories: 400}
	publisher := &recordingPublisher{}
	bus := changefeed.NewBus()

	controller := NewController(bus, aggregator, publisher, "user-1")
	controller.Start(context.Background())
	defer controller.Close()

	controller.SetActiveDate("2024-01-05")
	publisher.waitForResults(t, 1)

	aggregator.mu.Lock()
	aggregator.totals["2024-01-05"] = nutrition.DailyTotals{Calories: 1000}
	aggregator.mu.Unlock()

	bus.Publish(changefeed.Event{
		Table:       changefeed.TableNutritionLogs,
		Type:        changefeed.EventInsert,
		OwnerUserID: "user-1",
		Date:        "2024-01-05",
	})
	publisher.waitForResults(t, 2)

	result, _ := publisher.last()
	if result.totals.Calories != 1000 {
		t.Fatalf("recompute did not pick up new totals: %+v", result)
	}
}

func TestChangeEventForOtherDayIsIgnored(t *testing.T) {
	aggregator := newFakeAggregator()
	publisher := &recordingPublisher{}
	bus := changefeed.NewBus()

	controller := NewController(bus, aggregator, publisher, "user-1")
	controller.Start(context.Background())
	defer controller.Close()

	controller.SetActiveDate("2024-01-05")
	publisher.waitForResults(t, 1)

	bus.Publish(changefeed.Event{
		Table:       changefeed.TableNutritionLogs,
		Type:        changefeed.EventInsert,
		OwnerUserID: "user-1",
		Date:        "2024-01-09",
	})
	time.Sleep(50 * time.Millisecond)

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.results) != 1 {
		t.Fatalf("event for another day must not recompute, got %d results", len(publisher.results))
	}
}

func TestFetchErrorIsPublishedAsError(t *testing.T) {
	aggregator := newFakeAggregator()
	aggregator.err = errors.New("store unavailable")
	publisher := &recordingPublisher{}

	controller := NewController(changefeed.NewBus(), aggregator, publisher, "user-1")
	controller.Start(context.Background())
	defer controller.Close()

	controller.SetActiveDate("2024-01-05")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		publisher.mu.Lock()
		errCount := len(publisher.errs)
		publisher.mu.Unlock()
		if errCount > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.errs) == 0 {
		t.Fatal("expected a published error")
	}
	if len(publisher.results) != 0 {
		t.Fatalf("failed fetch must not publish totals, got %+v", publisher.results)
	}
}

func TestUnexpectedFeedCloseEntersErrorState(t *testing.T) {
	aggregator := newFakeAggregator()
	publisher := &recordingPublisher{}
	bus := changefeed.NewBus()

	controller := NewController(bus, aggregator, publisher, "user-1")
	controller.Start(context.Background())

	// Закрываем подписку мимо Close, как будто шина оборвала канал.
	controller.sub.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if controller.State() == StateError {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected StateError, got %v", controller.State())
}
