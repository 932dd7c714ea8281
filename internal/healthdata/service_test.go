package healthdata

import (
	"context"
	"testing"
	"time"
)

type stubProvider struct {
	authorized   bool
	permErr      error
	stepSamples  []Sample
	sleepSamples []Sample
	stepErr      error
}

func (p *stubProvider) InitPermissions(ctx context.Context, spec PermissionSpec) (bool, error) {
	return p.authorized, p.permErr
}

func (p *stubProvider) DailyStepSamples(ctx context.Context, from, to time.Time) ([]Sample, error) {
	if p.stepErr != nil {
		return nil, p.stepErr
	}
	return p.stepSamples, nil
}

func (p *stubProvider) SleepSamples(ctx context.Context, from, to time.Time) ([]Sample, error) {
	return p.sleepSamples, nil
}

func TestLoadDailyOrdersNewestFirst(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	provider := &stubProvider{
		authorized: true,
		stepSamples: []Sample{
			{Start: today + "T08:00:00", Value: 3000},
		},
	}
	service := NewService(provider, 90)

	resp, err := service.LoadDaily(context.Background(), KindSteps, 3)
	if err != nil {
		t.Fatalf("LoadDaily: %v", err)
	}

	if len(resp.Days) != 3 {
		t.Fatalf("expected 3 day points, got %d", len(resp.Days))
	}
	if resp.Days[0].Date != today {
		t.Fatalf("first point must be today %s, got %s", today, resp.Days[0].Date)
	}
	if resp.Days[0].Value != 3000 {
		t.Fatalf("today's total = %v, want 3000", resp.Days[0].Value)
	}
	for i := 1; i < len(resp.Days); i++ {
		if resp.Days[i].Date >= resp.Days[i-1].Date {
			t.Fatalf("days not descending: %s then %s", resp.Days[i-1].Date, resp.Days[i].Date)
		}
		if resp.Days[i].Value != 0 {
			t.Fatalf("days without samples must be zero, got %v", resp.Days[i].Value)
		}
	}
	if resp.Demo {
		t.Fatal("authorized provider must not be flagged demo")
	}
}

func TestLoadDailyRejectsBadInput(t *testing.T) {
	service := NewService(&stubProvider{authorized: true}, 90)

	if _, err := service.LoadDaily(context.Background(), Kind("heartrate"), 7); err != ErrInvalidKind {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if _, err := service.LoadDaily(context.Background(), KindSteps, 0); err != ErrInvalidDays {
		t.Fatalf("expected ErrInvalidDays, got %v", err)
	}
}

func TestLoadHourlyAlwaysReturns24Bins(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	provider := &stubProvider{
		authorized: true,
		stepSamples: []Sample{
			{Start: today + "T10:00:00", Value: 700},
		},
	}
	service := NewService(provider, 90)

	resp, err := service.LoadHourly(context.Background(), KindSteps, today)
	if err != nil {
		t.Fatalf("LoadHourly: %v", err)
	}

	if len(resp.Bins) != 24 {
		t.Fatalf("expected 24 bins, got %d", len(resp.Bins))
	}
	if resp.Bins[10] != 700 {
		t.Fatalf("bin 10 = %v, want 700", resp.Bins[10])
	}
}

func TestLoadHourlyRejectsBadDate(t *testing.T) {
	service := NewService(&stubProvider{authorized: true}, 90)

	if _, err := service.LoadHourly(context.Background(), KindSteps, "05.01.2024"); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestPermissionDeniedFallsBackToDemo(t *testing.T) {
	provider := &stubProvider{stepErr: ErrPermission}
	service := NewService(provider, 90)

	resp, err := service.LoadDaily(context.Background(), KindSteps, 7)
	if err != nil {
		t.Fatalf("LoadDaily must fall back, got error: %v", err)
	}
	if !resp.Demo {
		t.Fatal("fallback response must be flagged demo")
	}

	total := 0.0
	for _, p := range resp.Days {
		total += p.Value
	}
	if total == 0 {
		t.Fatal("demo fallback must still produce data")
	}
}

func TestConnectAndImportDeniedSwitchesToDemo(t *testing.T) {
	provider := &stubProvider{authorized: false, permErr: ErrPermission}
	service := NewService(provider, 30)

	resp, err := service.ConnectAndImport(context.Background())
	if err != nil {
		t.Fatalf("ConnectAndImport: %v", err)
	}

	if resp.Authorized {
		t.Fatal("denied permission must not report authorized")
	}
	if !resp.Demo {
		t.Fatal("denied permission must switch to demo data")
	}
	if resp.StepSamples == 0 || resp.SleepSamples == 0 {
		t.Fatalf("demo import must return samples, got %d/%d", resp.StepSamples, resp.SleepSamples)
	}
}

func TestDemoProviderIsDeterministic(t *testing.T) {
	demo := NewDemoProvider()
	from := time.Now().AddDate(0, 0, -6)
	to := time.Now()

	first, err := demo.DailyStepSamples(context.Background(), from, to)
	if err != nil {
		t.Fatalf("DailyStepSamples: %v", err)
	}
	second, _ := demo.DailyStepSamples(context.Background(), from, to)

	if len(first) != len(second) {
		t.Fatalf("sample counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
