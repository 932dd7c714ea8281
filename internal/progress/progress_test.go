package progress

import (
	"math"
	"testing"
)

func TestPercentComplete(t *testing.T) {
	tests := []struct {
		name   string
		actual float64
		goal   float64
		want   float64
	}{
		{"halfway", 1000, 2000, 50},
		{"exactly at goal", 2000, 2000, 100},
		{"over goal clamps to 100", 2500, 2000, 100},
		{"zero goal guards divide by zero", 500, 0, 0},
		{"negative goal", 500, -100, 0},
		{"negative actual clamps to 0", -300, 2000, 0},
		{"zero actual", 0, 2000, 0},
		{"nan goal", 500, math.NaN(), 0},
		{"inf goal", 500, math.Inf(1), 0},
		{"nan actual", math.NaN(), 2000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentComplete(tt.actual, tt.goal); got != tt.want {
				t.Fatalf("PercentComplete(%v, %v) = %v, want %v", tt.actual, tt.goal, got, tt.want)
			}
		})
	}
}

func TestPercentCompleteMonotonic(t *testing.T) {
	// For a fixed positive goal, the percentage never decreases as actual grows.
	const goal = 2000.0
	prev := PercentComplete(0, goal)
	for actual := 100.0; actual <= 4000; actual += 100 {
		cur := PercentComplete(actual, goal)
		if cur < prev {
			t.Fatalf("percentage decreased: %v -> %v at actual=%v", prev, cur, actual)
		}
		if cur < 0 || cur > 100 {
			t.Fatalf("percentage out of bounds: %v at actual=%v", cur, actual)
		}
		prev = cur
	}
}

func TestForNutrition(t *testing.T) {
	p := ForNutrition(1000, 75, 110, 70, 2000, 150, 220, 70)

	if p.CaloriesPercent != 50 || p.ProteinPercent != 50 || p.CarbsPercent != 50 || p.FatPercent != 100 {
		t.Fatalf("unexpected progress: %+v", p)
	}
}
