// Package dashboard собирает сводку дня из независимых сервисов.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/akarpov/welltrack/internal/activity"
	"github.com/akarpov/welltrack/internal/goals"
	"github.com/akarpov/welltrack/internal/habits"
	"github.com/akarpov/welltrack/internal/nutrition"
	"github.com/akarpov/welltrack/internal/progress"
)

var ErrInvalidDate = errors.New("invalid date format")

// NutritionService defines the nutrition operations the dashboard needs.
type NutritionService interface {
	ComputeDailyTotals(ctx context.Context, ownerUserID, date string) (nutrition.DailyTotals, error)
}

// GoalsService defines the goal operations the dashboard needs.
type GoalsService interface {
	Fetch(ctx context.Context, ownerUserID, category string) (*goals.GoalDTO, error)
}

// SleepService defines the sleep operations the dashboard needs.
type SleepService interface {
	TotalHours(ctx context.Context, ownerUserID, date string) (float64, error)
}

// ActivityService defines the activity operations the dashboard needs.
type ActivityService interface {
	DailySummary(ctx context.Context, ownerUserID, date string) (activity.DailyActivity, error)
}

// HabitsService defines the habit operations the dashboard needs.
type HabitsService interface {
	DailyCompletion(ctx context.Context, ownerUserID, date string) (habits.DailyCompletion, error)
}

type Service struct {
	nutrition NutritionService
	goals     GoalsService
	sleep     SleepService
	activity  ActivityService
	habits    HabitsService
}

func NewService(nutritionSvc NutritionService, goalsSvc GoalsService, sleepSvc SleepService, activitySvc ActivityService, habitsSvc HabitsService) *Service {
	return &Service{
		nutrition: nutritionSvc,
		goals:     goalsSvc,
		sleep:     sleepSvc,
		activity:  activitySvc,
		habits:    habitsSvc,
	}
}

// DaySummary assembles the day's totals, goal progress, sleep, activity and
// habit completion for one user. Without a stored goal the progress stays
// all-zero: percentages against a goal nobody set would be noise.
func (s *Service) DaySummary(ctx context.Context, ownerUserID string, date string) (*DaySummary, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	totals, err := s.nutrition.ComputeDailyTotals(ctx, ownerUserID, date)
	if err != nil {
		return nil, err
	}

	goal, err := s.goals.Fetch(ctx, ownerUserID, goals.CategoryNutrition)
	if err != nil {
		return nil, err
	}

	var nutritionProgress progress.NutritionProgress
	if goal != nil {
		nutritionProgress = progress.ForNutrition(
			totals.Calories, totals.Protein, totals.Carbs, totals.Fat,
			goal.CalorieGoal, goal.ProteinGoal, goal.CarbGoal, goal.FatGoal,
		)
	}

	sleepHours, err := s.sleep.TotalHours(ctx, ownerUserID, date)
	if err != nil {
		return nil, err
	}

	activitySummary, err := s.activity.DailySummary(ctx, ownerUserID, date)
	if err != nil {
		return nil, err
	}

	habitsCompletion, err := s.habits.DailyCompletion(ctx, ownerUserID, date)
	if err != nil {
		return nil, err
	}

	return &DaySummary{
		Date:      date,
		Nutrition: totals,
		Goal:      goal,
		Progress:  nutritionProgress,
		SleepHrs:  sleepHours,
		Activity:  activitySummary,
		Habits:    habitsCompletion,
	}, nil
}
