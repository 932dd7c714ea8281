package dbmigrate

import (
	"fmt"

	"github.com/akarpov/welltrack/internal/config"
)

const DefaultMigrationsDir = "migrations"

// SelectDatabaseURL выбирает строку подключения для миграций.
// Приоритет: DATABASE_URL_DIRECT > DATABASE_URL > DATABASE_URL_POOLED.
// Пулер (pgbouncer) плохо переживает DDL, поэтому pooled идёт с предупреждением,
// а requireDirect вовсе запрещает всё кроме прямого подключения.
func SelectDatabaseURL(cfg *config.Config, requireDirect bool) (dbURL string, source string, warning string, err error) {
	if requireDirect {
		if cfg.DatabaseURLDirect == "" {
			return "", "", "", fmt.Errorf("DATABASE_URL_DIRECT is required for DDL/migrations")
		}
		return cfg.DatabaseURLDirect, "DATABASE_URL_DIRECT", "", nil
	}

	if cfg.DatabaseURLDirect != "" {
		return cfg.DatabaseURLDirect, "DATABASE_URL_DIRECT", "", nil
	}
	if cfg.DatabaseURLRaw != "" {
		return cfg.DatabaseURLRaw, "DATABASE_URL", "", nil
	}
	if cfg.DatabaseURLPooled != "" {
		return cfg.DatabaseURLPooled, "DATABASE_URL_POOLED", "running DDL through a pooled connection is risky; set DATABASE_URL_DIRECT", nil
	}

	return "", "", "", fmt.Errorf("no database URL configured (set DATABASE_URL_DIRECT or DATABASE_URL)")
}
