package healthdata

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidKind = errors.New("invalid sample kind")
	ErrInvalidDate = errors.New("invalid date format")
	ErrInvalidDays = errors.New("invalid days range")
)

// Service загружает образцы у провайдера и нормализует их для выдачи.
// При отказе в доступе переключается на демо-провайдер, помечая ответы
// флагом demo, чтобы клиент не выдавал подставные данные за реальные.
type Service struct {
	provider      Provider
	demo          *DemoProvider
	importMaxDays int
	usingDemo     atomic.Bool
}

func NewService(provider Provider, importMaxDays int) *Service {
	if importMaxDays <= 0 {
		importMaxDays = 90
	}

	s := &Service{
		provider:      provider,
		demo:          NewDemoProvider(),
		importMaxDays: importMaxDays,
	}
	if _, isDemo := provider.(*DemoProvider); isDemo {
		s.usingDemo.Store(true)
	}
	return s
}

// ConnectAndImport запрашивает доступ и подтягивает образцы за максимальное окно.
func (s *Service) ConnectAndImport(ctx context.Context) (*ImportResponse, error) {
	authorized, err := s.provider.InitPermissions(ctx, PermissionSpec{
		Read: []Kind{KindSteps, KindSleep},
	})
	if err != nil && !errors.Is(err, ErrPermission) {
		return nil, err
	}
	if err != nil || !authorized {
		s.usingDemo.Store(true)
	}

	from, to := s.rangeFor(s.importMaxDays)

	steps, _, err := s.fetch(ctx, KindSteps, from, to)
	if err != nil {
		return nil, err
	}
	sleep, demo, err := s.fetch(ctx, KindSleep, from, to)
	if err != nil {
		return nil, err
	}

	return &ImportResponse{
		Authorized:   authorized && !s.usingDemo.Load(),
		Demo:         demo,
		StepSamples:  len(steps),
		SleepSamples: len(sleep),
	}, nil
}

// LoadDaily возвращает дневные суммы за последние days дней, новые сверху.
func (s *Service) LoadDaily(ctx context.Context, kind Kind, days int) (*DailyResponse, error) {
	if kind != KindSteps && kind != KindSleep {
		return nil, ErrInvalidKind
	}
	if days <= 0 {
		return nil, ErrInvalidDays
	}
	if days > s.importMaxDays {
		days = s.importMaxDays
	}

	from, to := s.rangeFor(days)
	samples, demo, err := s.fetch(ctx, kind, from, to)
	if err != nil {
		return nil, err
	}

	totals := DailyTotals(samples, kind)

	points := make([]DailyPoint, 0, days)
	for day := dayStart(to); !day.Before(dayStart(from)); day = day.AddDate(0, 0, -1) {
		key := day.Format("2006-01-02")
		points = append(points, DailyPoint{Date: key, Value: totals[key]})
	}

	return &DailyResponse{Kind: kind, Demo: demo, Days: points}, nil
}

// LoadHourly возвращает 24 часовых корзины одного дня.
func (s *Service) LoadHourly(ctx context.Context, kind Kind, date string) (*HourlyResponse, error) {
	if kind != KindSteps && kind != KindSleep {
		return nil, ErrInvalidKind
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	from := dayStart(day)
	to := from.AddDate(0, 0, 1)
	samples, demo, err := s.fetch(ctx, kind, from, to)
	if err != nil {
		return nil, err
	}

	return &HourlyResponse{
		Kind: kind,
		Date: date,
		Demo: demo,
		Bins: HourlyBins(samples, kind, date),
	}, nil
}

// fetch ходит к активному провайдеру; отказ в доступе переключает на демо
// насовсем, до перезапуска процесса.
func (s *Service) fetch(ctx context.Context, kind Kind, from, to time.Time) ([]Sample, bool, error) {
	provider := s.provider
	if s.usingDemo.Load() {
		provider = s.demo
	}

	samples, err := fetchKind(ctx, provider, kind, from, to)
	if errors.Is(err, ErrPermission) {
		s.usingDemo.Store(true)
		samples, err = fetchKind(ctx, s.demo, kind, from, to)
	}
	if err != nil {
		return nil, false, err
	}
	return samples, s.usingDemo.Load(), nil
}

func fetchKind(ctx context.Context, provider Provider, kind Kind, from, to time.Time) ([]Sample, error) {
	if kind == KindSleep {
		return provider.SleepSamples(ctx, from, to)
	}
	return provider.DailyStepSamples(ctx, from, to)
}

func (s *Service) rangeFor(days int) (from, to time.Time) {
	to = time.Now()
	from = dayStart(to).AddDate(0, 0, -(days - 1))
	return from, to
}
