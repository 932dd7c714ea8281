package nutrition

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidDate     = errors.New("invalid date format")
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrInvalidValue    = errors.New("nutrient values must be finite and non-negative")
)

// FetchError signals that the underlying store read failed. Callers keep the
// last successfully computed totals instead of overwriting them with zeros.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Storage defines the interface for nutrition log storage operations
type Storage interface {
	InsertLog(ctx context.Context, row *storage.NutritionLogRow) error
	ListLogsByDate(ctx context.Context, ownerUserID string, date string) ([]storage.NutritionLogRow, error)
}

// Service handles nutrition log business logic, including daily aggregation.
type Service struct {
	storage Storage
	bus     *changefeed.Bus
}

// NewService creates a new nutrition service.
func NewService(storage Storage, bus *changefeed.Bus) *Service {
	return &Service{
		storage: storage,
		bus:     bus,
	}
}

// CreateLog validates and stores a new log entry, then publishes a change
// event so live subscribers re-aggregate. Entries are immutable once stored.
func (s *Service) CreateLog(ctx context.Context, ownerUserID string, req CreateLogRequest) (*LogEntryDTO, error) {
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if err := validateDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	if !isValidMealType(req.MealType) {
		return nil, ErrInvalidMealType
	}

	for _, v := range []float64{req.Calories, req.Protein, req.Carbs, req.Fat} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, ErrInvalidValue
		}
	}

	row := &storage.NutritionLogRow{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		Date:        date,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		MealName:    req.MealName,
		MealType:    req.MealType,
		LoggedAt:    time.Now().UTC(),
	}

	if err := s.storage.InsertLog(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to insert nutrition log: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(changefeed.Event{
			Table:       changefeed.TableNutritionLogs,
			Type:        changefeed.EventInsert,
			OwnerUserID: ownerUserID,
			RowID:       row.ID,
			Date:        row.Date,
		})
	}

	dto := toDTO(row)
	return &dto, nil
}

// ListLogs returns the user's log entries for a calendar day.
func (s *Service) ListLogs(ctx context.Context, ownerUserID string, date string) ([]LogEntryDTO, error) {
	if err := validateDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	rows, err := s.storage.ListLogsByDate(ctx, ownerUserID, date)
	if err != nil {
		return nil, &FetchError{Op: "nutrition logs", Err: err}
	}

	dtos := make([]LogEntryDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toDTO(&row)
	}

	return dtos, nil
}

// ComputeDailyTotals sums calories/protein/carbs/fat over all of the user's
// log entries for the given day. An empty date means today (server-local).
// Zero matching rows yield zero totals, not an error; malformed stored values
// are coerced to 0 per field rather than failing the whole aggregation.
func (s *Service) ComputeDailyTotals(ctx context.Context, ownerUserID string, date string) (DailyTotals, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if err := validateDate(date); err != nil {
		return DailyTotals{}, ErrInvalidDate
	}

	rows, err := s.storage.ListLogsByDate(ctx, ownerUserID, date)
	if err != nil {
		return DailyTotals{}, &FetchError{Op: "nutrition logs", Err: err}
	}

	var totals DailyTotals
	for _, row := range rows {
		totals.Calories += sanitize(row.Calories)
		totals.Protein += sanitize(row.Protein)
		totals.Carbs += sanitize(row.Carbs)
		totals.Fat += sanitize(row.Fat)
	}

	return totals, nil
}

// sanitize coerces NaN, Inf and negative values to 0 so one malformed row
// never corrupts or aborts the day's totals.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func toDTO(row *storage.NutritionLogRow) LogEntryDTO {
	return LogEntryDTO{
		ID:       row.ID,
		Date:     row.Date,
		Calories: row.Calories,
		Protein:  row.Protein,
		Carbs:    row.Carbs,
		Fat:      row.Fat,
		MealName: row.MealName,
		MealType: row.MealType,
		LoggedAt: row.LoggedAt,
	}
}

func isValidMealType(t string) bool {
	for _, valid := range ValidMealTypes {
		if t == valid {
			return true
		}
	}
	return false
}

func validateDate(date string) error {
	_, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ErrInvalidDate
	}
	return nil
}
