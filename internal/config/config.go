package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Health sample provider modes
const (
	HealthModeDemo   = "demo"
	HealthModeRemote = "remote"
)

// Config содержит конфигурацию приложения
type Config struct {
	Env      string // local | staging | prod
	Port     int
	LogLevel string

	// Database
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string // DATABASE_URL as provided
	DatabaseURLPooled string // DATABASE_URL_POOLED as provided
	DatabaseURLDirect string // for migrations / DDL (may be empty)

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting
	RateLimitRPS   int
	RateLimitBurst int

	// Authentication
	AuthMode      string // none | dev
	AuthEnabled   bool
	AuthRequired  bool
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Health sample provider
	HealthProviderMode     string // demo | remote
	HealthProviderBaseURL  string
	HealthProviderTimeoutS int
	HealthImportMaxDays    int

	// Quote of the day (supplementary, never blocks the dashboard)
	QuotesBaseURL  string
	QuotesTimeoutS int

	// Migrations
	RunMigrationsOnStartup bool
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	// APP_ENV (fallback to ENV for backward compat, default: local)
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	// PORT (default: 8080)
	port := envInt("PORT", 8080)

	// LOG_LEVEL (default: debug)
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	// ---------- Database ----------
	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	// ---------- Migrations ----------
	runMigrationsOnStartup := parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP")

	// ---------- CORS ----------
	corsOrigins := parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env)
	corsAllowCreds := os.Getenv("CORS_ALLOW_CREDENTIALS") == "1"

	// ---------- Rate Limiting ----------
	rateLimitRPS := envInt("RATE_LIMIT_RPS", 0)
	rateLimitBurst := envInt("RATE_LIMIT_BURST", 0)

	// ---------- Auth ----------
	// AUTH_MODE (default: none)
	authMode := strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_MODE")))
	if authMode == "" {
		authMode = "none"
	}
	if authMode != "none" && authMode != "dev" {
		log.Printf("WARNING: unknown AUTH_MODE=%q, fallback to none", authMode)
		authMode = "none"
	}
	authEnabled := authMode != "none"
	authRequired := authEnabled && parseBoolEnv("AUTH_REQUIRED")

	// JWT_SECRET
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	if jwtSecret == "change_me" && env != "local" {
		log.Println("WARNING: JWT_SECRET is set to 'change_me' in non-local environment!")
	}

	// JWT_ISSUER (default: "welltrack")
	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "welltrack"
	}

	// JWT_TTL_MINUTES (default: 10080 = 7 days)
	jwtTTLMinutes := envInt("JWT_TTL_MINUTES", 10080)

	// ---------- Health sample provider ----------
	healthMode := strings.ToLower(strings.TrimSpace(os.Getenv("HEALTH_PROVIDER_MODE")))
	if healthMode == "" {
		healthMode = HealthModeDemo
	}
	if healthMode != HealthModeDemo && healthMode != HealthModeRemote {
		log.Printf("WARNING: unknown HEALTH_PROVIDER_MODE=%q, fallback to %s", healthMode, HealthModeDemo)
		healthMode = HealthModeDemo
	}

	healthBaseURL := strings.TrimSpace(os.Getenv("HEALTH_PROVIDER_BASE_URL"))
	if healthMode == HealthModeRemote && healthBaseURL == "" {
		log.Printf("WARNING: HEALTH_PROVIDER_MODE=remote but HEALTH_PROVIDER_BASE_URL is empty, fallback to %s", HealthModeDemo)
		healthMode = HealthModeDemo
	}

	// HEALTH_PROVIDER_TIMEOUT_SECONDS (default: 10)
	healthTimeout := envInt("HEALTH_PROVIDER_TIMEOUT_SECONDS", 10)
	if healthTimeout <= 0 {
		healthTimeout = 10
	}

	// HEALTH_IMPORT_MAX_DAYS (default: 90)
	healthImportMaxDays := envInt("HEALTH_IMPORT_MAX_DAYS", 90)
	if healthImportMaxDays <= 0 {
		healthImportMaxDays = 90
	}

	// ---------- Quotes ----------
	quotesBaseURL := strings.TrimSpace(os.Getenv("QUOTES_BASE_URL"))

	// QUOTES_TIMEOUT_SECONDS (default: 3, enforce > 0)
	quotesTimeout := envInt("QUOTES_TIMEOUT_SECONDS", 3)
	if quotesTimeout <= 0 {
		quotesTimeout = 3
	}

	return &Config{
		Env:               env,
		Port:              port,
		LogLevel:          logLevel,
		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		CORSAllowedOrigins:   corsOrigins,
		CORSAllowCredentials: corsAllowCreds,

		RateLimitRPS:   rateLimitRPS,
		RateLimitBurst: rateLimitBurst,

		AuthMode:      authMode,
		AuthEnabled:   authEnabled,
		AuthRequired:  authRequired,
		JWTSecret:     jwtSecret,
		JWTIssuer:     jwtIssuer,
		JWTTTLMinutes: jwtTTLMinutes,

		HealthProviderMode:     healthMode,
		HealthProviderBaseURL:  healthBaseURL,
		HealthProviderTimeoutS: healthTimeout,
		HealthImportMaxDays:    healthImportMaxDays,

		QuotesBaseURL:  quotesBaseURL,
		QuotesTimeoutS: quotesTimeout,

		RunMigrationsOnStartup: runMigrationsOnStartup,
	}
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS env var.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:8081"}
		}
		return nil // prod: deny by default
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
