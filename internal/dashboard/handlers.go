package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akarpov/welltrack/internal/nutrition"
	"github.com/akarpov/welltrack/internal/userctx"
)

// HandleDaySummary handles GET /v1/dashboard/day?date=
func HandleDaySummary(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerUserID := ownerFromRequest(r)

		summary, err := service.DaySummary(r.Context(), ownerUserID, r.URL.Query().Get("date"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(summary)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var fetchErr *nutrition.FetchError
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
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
