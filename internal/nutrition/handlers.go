package nutrition

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akarpov/welltrack/internal/userctx"
)

// HandleListLogs handles GET /v1/nutrition/logs?date=
func HandleListLogs(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		logs, err := service.ListLogs(r.Context(), ownerUserID, date)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LogsResponse{Logs: logs})
	}
}

// HandleCreateLog handles POST /v1/nutrition/logs
func HandleCreateLog(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		var req CreateLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		entry, err := service.CreateLog(r.Context(), ownerUserID, req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entry)
	}
}

// HandleDailyTotals handles GET /v1/nutrition/totals?date=
func HandleDailyTotals(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		totals, err := service.ComputeDailyTotals(r.Context(), ownerUserID, date)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TotalsResponse{Date: date, Totals: totals})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var fetchErr *FetchError
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, ErrInvalidMealType):
		writeError(w, http.StatusBadRequest, "invalid_meal_type", err.Error())
	case errors.Is(err, ErrInvalidValue):
		writeError(w, http.StatusBadRequest, "invalid_value", err.Error())
	case errors.As(err, &fetchErr):
		writeError(w, http.StatusBadGateway, "fetch_failed", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func ownerFromRequest(r *http.Request) string {
	return userctx.Owner(r.Context())
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
