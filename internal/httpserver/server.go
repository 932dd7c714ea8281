package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/akarpov/welltrack/internal/activity"
	"github.com/akarpov/welltrack/internal/auth"
	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/config"
	"github.com/akarpov/welltrack/internal/dashboard"
	"github.com/akarpov/welltrack/internal/goals"
	"github.com/akarpov/welltrack/internal/habits"
	"github.com/akarpov/welltrack/internal/healthdata"
	"github.com/akarpov/welltrack/internal/nutrition"
	"github.com/akarpov/welltrack/internal/quotes"
	"github.com/akarpov/welltrack/internal/realtime"
	"github.com/akarpov/welltrack/internal/sleep"
	"github.com/akarpov/welltrack/internal/storage"
	"github.com/akarpov/welltrack/internal/storage/memory"
	"github.com/akarpov/welltrack/internal/storage/postgres"
)

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	bus            *changefeed.Bus
	hub            *realtime.Hub
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		bus:    changefeed.NewBus(),
		hub:    realtime.NewHub(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("Подключение к PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("Ошибка подключения к PostgreSQL: %v", err)
		log.Println("Fallback на in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("PostgreSQL подключен успешно")
	s.storage = pgStorage
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)
	if s.config.AuthMode != "none" {
		authHandler := auth.NewHandlers(authService)

		// POST /v1/auth/dev - локальный токен без внешнего IdP
		s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)
	}

	// Nutrition API
	nutritionService := nutrition.NewService(s.storage, s.bus)
	s.mux.HandleFunc("GET /v1/nutrition/logs", nutrition.HandleListLogs(nutritionService))
	s.mux.HandleFunc("POST /v1/nutrition/logs", nutrition.HandleCreateLog(nutritionService))
	s.mux.HandleFunc("GET /v1/nutrition/totals", nutrition.HandleDailyTotals(nutritionService))

	// Goals API
	goalsService := goals.NewService(s.storage)
	s.mux.HandleFunc("GET /v1/goals/{category}", goals.HandleFetch(goalsService))
	s.mux.HandleFunc("POST /v1/goals/{category}", goals.HandleCreate(goalsService))
	s.mux.HandleFunc("PUT /v1/goals/{category}", goals.HandleUpdate(goalsService))

	// Sleep API
	sleepService := sleep.NewService(s.storage, s.bus)
	s.mux.HandleFunc("GET /v1/sleep/logs", sleep.HandleListLogs(sleepService))
	s.mux.HandleFunc("POST /v1/sleep/logs", sleep.HandleCreateLog(sleepService))
	s.mux.HandleFunc("GET /v1/sleep/summary", sleep.HandleSummary(sleepService))

	// Activity API
	activityService := activity.NewService(s.storage, s.bus)
	s.mux.HandleFunc("GET /v1/activity/logs", activity.HandleListLogs(activityService))
	s.mux.HandleFunc("POST /v1/activity/logs", activity.HandleCreateLog(activityService))
	s.mux.HandleFunc("GET /v1/activity/summary", activity.HandleSummary(activityService))

	// Habits API
	habitsService := habits.NewService(s.storage, s.bus)
	s.mux.HandleFunc("GET /v1/habits", habits.HandleList(habitsService))
	s.mux.HandleFunc("POST /v1/habits", habits.HandleCreate(habitsService))
	s.mux.HandleFunc("POST /v1/habits/{id}/complete", habits.HandleComplete(habitsService))
	s.mux.HandleFunc("DELETE /v1/habits/{id}/complete", habits.HandleUncomplete(habitsService))

	// Health samples API
	healthProvider := healthdata.NewProvider(s.config)
	healthService := healthdata.NewService(healthProvider, s.config.HealthImportMaxDays)
	s.mux.HandleFunc("GET /v1/health/daily", healthdata.HandleDaily(healthService))
	s.mux.HandleFunc("GET /v1/health/hourly", healthdata.HandleHourly(healthService))
	s.mux.HandleFunc("POST /v1/health/import", healthdata.HandleImport(healthService))

	// Dashboard API
	dashboardService := dashboard.NewService(nutritionService, goalsService, sleepService, activityService, habitsService)
	s.mux.HandleFunc("GET /v1/dashboard/day", dashboard.HandleDaySummary(dashboardService))

	// Quotes API
	quotesClient := quotes.NewClient(s.config.QuotesBaseURL, s.config.QuotesTimeoutS)
	s.mux.HandleFunc("GET /v1/quotes/today", quotes.HandleToday(quotesClient))

	// Live totals over websocket
	s.mux.HandleFunc("GET /v1/ws", realtime.HandleWS(s.hub, s.bus, nutritionService))
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler собирает цепочку middleware: CORS → Rate Limit → Auth → Router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Dashboard API: http://localhost%s/v1/dashboard/day\n", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
