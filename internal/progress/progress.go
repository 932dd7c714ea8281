// Package progress maps aggregated daily totals against stored goals.
// Everything here is pure computation: no I/O, no errors.
package progress

import "math"

// PercentComplete returns how far actual is toward goal, in percent,
// clamped to [0, 100]. A goal of zero or less (or a non-finite input)
// yields 0 rather than a division blow-up or a nonsensical percentage.
func PercentComplete(actual, goal float64) float64 {
	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return 0
	}
	if math.IsNaN(actual) || math.IsInf(actual, 0) {
		return 0
	}

	pct := actual / goal * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// NutritionProgress holds per-metric completion percentages for a day.
type NutritionProgress struct {
	CaloriesPercent float64 `json:"calories_percent"`
	ProteinPercent  float64 `json:"protein_percent"`
	CarbsPercent    float64 `json:"carbs_percent"`
	FatPercent      float64 `json:"fat_percent"`
}

// ForNutrition computes completion percentages for the four tracked metrics.
func ForNutrition(actualCalories, actualProtein, actualCarbs, actualFat, goalCalories, goalProtein, goalCarbs, goalFat float64) NutritionProgress {
	return NutritionProgress{
		CaloriesPercent: PercentComplete(actualCalories, goalCalories),
		ProteinPercent:  PercentComplete(actualProtein, goalProtein),
		CarbsPercent:    PercentComplete(actualCarbs, goalCarbs),
		FatPercent:      PercentComplete(actualFat, goalFat),
	}
}
