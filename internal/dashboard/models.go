package dashboard

import (
	"github.com/akarpov/welltrack/internal/activity"
	"github.com/akarpov/welltrack/internal/goals"
	"github.com/akarpov/welltrack/internal/habits"
	"github.com/akarpov/welltrack/internal/nutrition"
	"github.com/akarpov/welltrack/internal/progress"
)

// DaySummary — сводка дня для главного экрана
type DaySummary struct {
	Date      string                     `json:"date"`
	Nutrition nutrition.DailyTotals      `json:"nutrition"`
	Goal      *goals.GoalDTO             `json:"goal,omitempty"`
	Progress  progress.NutritionProgress `json:"progress"`
	SleepHrs  float64                    `json:"sleep_hours"`
	Activity  activity.DailyActivity     `json:"activity"`
	Habits    habits.DailyCompletion     `json:"habits"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
