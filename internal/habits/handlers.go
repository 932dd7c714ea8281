package habits

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akarpov/welltrack/internal/userctx"
	"github.com/google/uuid"
)

// HandleList handles GET /v1/habits?date=
func HandleList(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		habits, err := service.ListForDate(r.Context(), ownerUserID, date)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HabitsResponse{Date: date, Habits: habits})
	}
}

// HandleCreate handles POST /v1/habits
func HandleCreate(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		var req CreateHabitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		habit, err := service.CreateHabit(r.Context(), ownerUserID, req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(habit)
	}
}

// HandleComplete handles POST /v1/habits/{id}/complete?date=
func HandleComplete(service *Service) http.HandlerFunc {
	return setCompletedHandler(service, true)
}

// HandleUncomplete handles DELETE /v1/habits/{id}/complete?date=
func HandleUncomplete(service *Service) http.HandlerFunc {
	return setCompletedHandler(service, false)
}

func setCompletedHandler(service *Service, completed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		habitID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_id", "invalid habit id")
			return
		}

		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		if err := service.SetCompleted(r.Context(), ownerUserID, habitID, date, completed); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, ErrEmptyName):
		writeError(w, http.StatusBadRequest, "empty_name", err.Error())
	case errors.Is(err, ErrHabitNotFound):
		writeError(w, http.StatusNotFound, "habit_not_found", err.Error())
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
