package quotes

import (
	"encoding/json"
	"net/http"
)

// HandleToday handles GET /v1/quotes/today
func HandleToday(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quote := client.Today(r.Context())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(quote)
	}
}
