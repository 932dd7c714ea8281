package goals

import (
	"time"

	"github.com/google/uuid"
)

// Goal categories
const (
	CategoryNutrition = "nutrition"
)

// GoalDTO is the API response format.
type GoalDTO struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	CalorieGoal float64   `json:"calorie_goal"`
	ProteinGoal float64   `json:"protein_goal"`
	CarbGoal    float64   `json:"carb_goal"`
	FatGoal     float64   `json:"fat_goal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertGoalRequest is the request body for creating/updating a goal.
// Calories must be strictly positive; the macros only non-negative.
type UpsertGoalRequest struct {
	CalorieGoal float64 `json:"calorie_goal" validate:"required,gt=0"`
	ProteinGoal float64 `json:"protein_goal" validate:"gte=0"`
	CarbGoal    float64 `json:"carb_goal" validate:"gte=0"`
	FatGoal     float64 `json:"fat_goal" validate:"gte=0"`
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
