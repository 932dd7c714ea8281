package nutrition

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

// mockStorage implements Storage for testing
type mockStorage struct {
	rows    []storage.NutritionLogRow
	listErr error
}

func (m *mockStorage) InsertLog(ctx context.Context, row *storage.NutritionLogRow) error {
	m.rows = append(m.rows, *row)
	return nil
}

func (m *mockStorage) ListLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.NutritionLogRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []storage.NutritionLogRow
	for _, row := range m.rows {
		if row.OwnerUserID == ownerUserID && row.Date == date {
			result = append(result, row)
		}
	}
	return result, nil
}

func logRow(owner, date string, cal, prot, carbs, fat float64) storage.NutritionLogRow {
	return storage.NutritionLogRow{
		ID:          uuid.New(),
		OwnerUserID: owner,
		Date:        date,
		Calories:    cal,
		Protein:     prot,
		Carbs:       carbs,
		Fat:         fat,
		MealType:    MealLunch,
	}
}

func TestComputeDailyTotalsSumsAllFields(t *testing.T) {
	store := &mockStorage{rows: []storage.NutritionLogRow{
		logRow("u1", "2024-01-05", 400, 20, 50, 10),
		logRow("u1", "2024-01-05", 600, 30, 70, 15),
	}}
	service := NewService(store, nil)

	totals, err := service.ComputeDailyTotals(context.Background(), "u1", "2024-01-05")
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}

	want := DailyTotals{Calories: 1000, Protein: 50, Carbs: 120, Fat: 25}
	if totals != want {
		t.Fatalf("expected %+v, got %+v", want, totals)
	}
}

func TestComputeDailyTotalsEmptySetIsZero(t *testing.T) {
	service := NewService(&mockStorage{}, nil)

	totals, err := service.ComputeDailyTotals(context.Background(), "u1", "2024-01-05")
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}

	if totals != (DailyTotals{}) {
		t.Fatalf("expected zero totals for empty day, got %+v", totals)
	}
}

func TestComputeDailyTotalsCoercesMalformedValues(t *testing.T) {
	store := &mockStorage{rows: []storage.NutritionLogRow{
		logRow("u1", "2024-01-05", math.NaN(), -5, math.Inf(1), 10),
		logRow("u1", "2024-01-05", 300, 15, 40, math.Inf(-1)),
	}}
	service := NewService(store, nil)

	totals, err := service.ComputeDailyTotals(context.Background(), "u1", "2024-01-05")
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}

	want := DailyTotals{Calories: 300, Protein: 15, Carbs: 40, Fat: 10}
	if totals != want {
		t.Fatalf("expected malformed fields coerced to 0, want %+v got %+v", want, totals)
	}
}

func TestComputeDailyTotalsNeverCrossesUsers(t *testing.T) {
	store := &mockStorage{rows: []storage.NutritionLogRow{
		logRow("u1", "2024-01-05", 400, 20, 50, 10),
		logRow("u2", "2024-01-05", 900, 90, 90, 90),
	}}
	service := NewService(store, nil)

	totals, err := service.ComputeDailyTotals(context.Background(), "u1", "2024-01-05")
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}

	if totals.Calories != 400 {
		t.Fatalf("expected only u1 rows summed, got %+v", totals)
	}
}

func TestComputeDailyTotalsWrapsStoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	service := NewService(&mockStorage{listErr: cause}, nil)

	_, err := service.ComputeDailyTotals(context.Background(), "u1", "2024-01-05")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestComputeDailyTotalsRejectsBadDate(t *testing.T) {
	service := NewService(&mockStorage{}, nil)

	if _, err := service.ComputeDailyTotals(context.Background(), "u1", "05.01.2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestCreateLogPublishesChangeEvent(t *testing.T) {
	bus := changefeed.NewBus()
	sub := bus.Subscribe(changefeed.TableNutritionLogs, "u1")
	defer sub.Close()

	service := NewService(&mockStorage{}, bus)

	entry, err := service.CreateLog(context.Background(), "u1", CreateLogRequest{
		Date:     "2024-01-05",
		Calories: 250,
		MealName: "Oatmeal",
		MealType: MealBreakfast,
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}

	select {
	case evt := <-sub.C:
		if evt.Type != changefeed.EventInsert || evt.RowID != entry.ID || evt.Date != "2024-01-05" {
			t.Fatalf("unexpected event %+v", evt)
		}
	default:
		t.Fatal("expected a change event after insert")
	}
}

func TestCreateLogRejectsMalformedInput(t *testing.T) {
	service := NewService(&mockStorage{}, nil)

	tests := []struct {
		name string
		req  CreateLogRequest
		want error
	}{
		{"negative calories", CreateLogRequest{Date: "2024-01-05", Calories: -1, MealType: MealLunch}, ErrInvalidValue},
		{"nan protein", CreateLogRequest{Date: "2024-01-05", Protein: math.NaN(), MealType: MealLunch}, ErrInvalidValue},
		{"bad meal type", CreateLogRequest{Date: "2024-01-05", MealType: "brunch"}, ErrInvalidMealType},
		{"bad date", CreateLogRequest{Date: "Jan 5", MealType: MealLunch}, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.CreateLog(context.Background(), "u1", tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
