package healthdata

import (
	"context"
	"fmt"
	"time"
)

// DemoProvider отдаёт детерминированные правдоподобные данные.
// Используется, когда реальный провайдер не настроен или отказал в доступе.
type DemoProvider struct{}

func NewDemoProvider() *DemoProvider {
	return &DemoProvider{}
}

func (p *DemoProvider) InitPermissions(ctx context.Context, spec PermissionSpec) (bool, error) {
	_ = ctx
	_ = spec
	return true, nil
}

func (p *DemoProvider) DailyStepSamples(ctx context.Context, from, to time.Time) ([]Sample, error) {
	_ = ctx

	samples := make([]Sample, 0)
	for day := dayStart(from); !day.After(to); day = day.AddDate(0, 0, 1) {
		seed := day.YearDay()
		// Утро, день и вечер по отдельности, чтобы почасовой график не был плоским.
		samples = append(samples,
			Sample{Start: demoStamp(day, 8), Value: float64(2000 + seed%7*350)},
			Sample{Start: demoStamp(day, 13), Value: float64(1500 + seed%5*420)},
			Sample{Start: demoStamp(day, 19), Value: float64(2500 + seed%9*280)},
		)
	}
	return samples, nil
}

func (p *DemoProvider) SleepSamples(ctx context.Context, from, to time.Time) ([]Sample, error) {
	_ = ctx

	samples := make([]Sample, 0)
	for day := dayStart(from); !day.After(to); day = day.AddDate(0, 0, 1) {
		seed := day.YearDay()
		hours := 6.5 + float64(seed%4)*0.5
		samples = append(samples, Sample{
			Start: demoStamp(day, 0),
			End:   demoStamp(day, int(hours)),
			Value: hours,
		})
	}
	return samples, nil
}

func dayStart(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

func demoStamp(day time.Time, hour int) string {
	return fmt.Sprintf("%sT%02d:00:00", day.Format("2006-01-02"), hour)
}
