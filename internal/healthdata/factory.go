package healthdata

import (
	"strings"

	"github.com/akarpov/welltrack/internal/config"
)

func NewProvider(cfg *config.Config) Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.HealthProviderMode))
	if mode == "" {
		mode = config.HealthModeDemo
	}

	switch mode {
	case config.HealthModeRemote:
		return NewRemoteProvider(cfg)
	default:
		return NewDemoProvider()
	}
}
