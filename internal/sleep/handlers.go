package sleep

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akarpov/welltrack/internal/userctx"
)

// HandleListLogs handles GET /v1/sleep/logs?date=
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

// HandleCreateLog handles POST /v1/sleep/logs
func HandleCreateLog(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		var req CreateSleepLogRequest
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

// HandleSummary handles GET /v1/sleep/summary?date=
func HandleSummary(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		total, err := service.TotalHours(r.Context(), ownerUserID, date)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(SummaryResponse{Date: date, TotalHours: total})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, ErrInvalidTime):
		writeError(w, http.StatusBadRequest, "invalid_time", err.Error())
	case errors.Is(err, ErrInvalidQuality):
		writeError(w, http.StatusBadRequest, "invalid_quality", err.Error())
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
