package healthdata

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// HandleDaily handles GET /v1/health/daily?kind=&days=
func HandleDaily(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := Kind(r.URL.Query().Get("kind"))
		if kind == "" {
			kind = KindSteps
		}

		days := 7
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_days", "days must be an integer")
				return
			}
			days = parsed
		}

		resp, err := service.LoadDaily(r.Context(), kind, days)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// HandleHourly handles GET /v1/health/hourly?kind=&date=
func HandleHourly(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := Kind(r.URL.Query().Get("kind"))
		if kind == "" {
			kind = KindSteps
		}

		resp, err := service.LoadHourly(r.Context(), kind, r.URL.Query().Get("date"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// HandleImport handles POST /v1/health/import
func HandleImport(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.ConnectAndImport(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "invalid_kind", err.Error())
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, ErrInvalidDays):
		writeError(w, http.StatusBadRequest, "invalid_days", err.Error())
	case errors.Is(err, ErrPermission):
		writeError(w, http.StatusForbidden, "permission_denied", err.Error())
	default:
		writeError(w, http.StatusBadGateway, "provider_failed", err.Error())
	}
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
