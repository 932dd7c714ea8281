package nutrition

import (
	"time"

	"github.com/google/uuid"
)

// Meal types
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// ValidMealTypes lists the accepted meal types.
var ValidMealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// LogEntryDTO is the API response format for a single log entry.
type LogEntryDTO struct {
	ID       uuid.UUID `json:"id"`
	Date     string    `json:"date"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	MealName string    `json:"meal_name"`
	MealType string    `json:"meal_type"`
	LoggedAt time.Time `json:"logged_at"`
}

// CreateLogRequest is the request body for logging a meal.
type CreateLogRequest struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	MealName string  `json:"meal_name"`
	MealType string  `json:"meal_type"`
}

// DailyTotals — суммарные значения за день (derived, not persisted)
type DailyTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// LogsResponse is the response for listing log entries.
type LogsResponse struct {
	Logs []LogEntryDTO `json:"logs"`
}

// TotalsResponse is the response for daily totals.
type TotalsResponse struct {
	Date   string      `json:"date"`
	Totals DailyTotals `json:"totals"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
