package healthdata

import (
	"context"
	"errors"
	"time"
)

// ErrPermission возвращается, когда провайдер устройства отказал в доступе.
var ErrPermission = errors.New("health data access denied")

// Provider — интерфейс источника данных здоровья (устройство или демо).
type Provider interface {
	InitPermissions(ctx context.Context, spec PermissionSpec) (bool, error)
	DailyStepSamples(ctx context.Context, from, to time.Time) ([]Sample, error)
	SleepSamples(ctx context.Context, from, to time.Time) ([]Sample, error)
}
