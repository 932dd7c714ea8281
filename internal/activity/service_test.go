package activity

import (
	"context"
	"math"
	"testing"

	"github.com/akarpov/welltrack/internal/storage"
)

type mockStorage struct {
	rows []storage.ActivityLogRow
}

func (m *mockStorage) InsertActivityLog(ctx context.Context, row *storage.ActivityLogRow) error {
	m.rows = append(m.rows, *row)
	return nil
}

func (m *mockStorage) ListActivityLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.ActivityLogRow, error) {
	var result []storage.ActivityLogRow
	for _, row := range m.rows {
		if row.OwnerUserID == ownerUserID && row.Date == date {
			result = append(result, row)
		}
	}
	return result, nil
}

func TestDailySummarySumsLogs(t *testing.T) {
	service := NewService(&mockStorage{}, nil)

	entries := []CreateLogRequest{
		{Date: "2024-01-05", ActivityType: "run", DurationMin: 30, CaloriesBurned: 300},
		{Date: "2024-01-05", ActivityType: "gym", DurationMin: 45, CaloriesBurned: 250},
		{Date: "2024-01-06", ActivityType: "walk", DurationMin: 60, CaloriesBurned: 200},
	}
	for _, req := range entries {
		if _, err := service.CreateLog(context.Background(), "user-1", req); err != nil {
			t.Fatalf("CreateLog: %v", err)
		}
	}

	summary, err := service.DailySummary(context.Background(), "user-1", "2024-01-05")
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}

	if summary.DurationMin != 75 || summary.CaloriesBurned != 550 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestDailySummaryEmptyDayIsZero(t *testing.T) {
	service := NewService(&mockStorage{}, nil)

	summary, err := service.DailySummary(context.Background(), "user-1", "2024-01-05")
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}
	if summary.DurationMin != 0 || summary.CaloriesBurned != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestCreateLogValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateLogRequest
		wantErr error
	}{
		{"bad date", CreateLogRequest{Date: "Jan 5", ActivityType: "run", DurationMin: 30}, ErrInvalidDate},
		{"unknown type", CreateLogRequest{Date: "2024-01-05", ActivityType: "parkour", DurationMin: 30}, ErrInvalidActivityType},
		{"negative duration", CreateLogRequest{Date: "2024-01-05", ActivityType: "run", DurationMin: -10}, ErrInvalidValue},
		{"nan calories", CreateLogRequest{Date: "2024-01-05", ActivityType: "run", DurationMin: 30, CaloriesBurned: math.NaN()}, ErrInvalidValue},
		{"negative calories", CreateLogRequest{Date: "2024-01-05", ActivityType: "run", DurationMin: 30, CaloriesBurned: -5}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(&mockStorage{}, nil)
			if _, err := service.CreateLog(context.Background(), "user-1", tt.req); err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
