package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akarpov/welltrack/internal/changefeed"
	"github.com/akarpov/welltrack/internal/live"
	"github.com/akarpov/welltrack/internal/nutrition"
	"github.com/akarpov/welltrack/internal/userctx"
)

const pingInterval = 25 * time.Second

// Server-to-client message kinds
const (
	KindTotalsUpdated = "totals.updated"
	KindTotalsError   = "totals.error"
)

type TotalsMessage struct {
	Kind   string                `json:"kind"`
	Date   string                `json:"date"`
	Totals nutrition.DailyTotals `json:"totals"`
}

type ErrorMessage struct {
	Kind    string `json:"kind"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type clientMessage struct {
	Type string `json:"type"` // select_day | refetch
	Date string `json:"date"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // CORS-слой выше уже отфильтровал источники
}

// clientPublisher доставляет результаты пересчёта в одно соединение.
type clientPublisher struct {
	client *Client
}

func (p clientPublisher) PublishTotals(date string, totals nutrition.DailyTotals) {
	_ = p.client.Send(TotalsMessage{Kind: KindTotalsUpdated, Date: date, Totals: totals})
}

func (p clientPublisher) PublishError(date string, err error) {
	_ = p.client.Send(ErrorMessage{Kind: KindTotalsError, Date: date, Message: err.Error()})
}

// HandleWS handles GET /v1/ws: живые суммы активного дня.
// На соединение поднимается свой контроллер; клиент переключает день
// сообщением {"type":"select_day","date":"YYYY-MM-DD"}.
func HandleWS(hub *Hub, bus *changefeed.Bus, aggregator live.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userctx.Owner(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := NewClient(userID, conn)
		hub.Register(client)

		controller := live.NewController(bus, aggregator, clientPublisher{client: client}, userID)
		controller.Start(r.Context())
		controller.SetActiveDate(time.Now().Format("2006-01-02"))

		cleanup := func() {
			controller.Close()
			hub.Unregister(client)
		}

		// Пинги, чтобы прокси не резали простаивающее соединение.
		go func() {
			t := time.NewTicker(pingInterval)
			defer t.Stop()
			for range t.C {
				if err := client.ping(); err != nil {
					return
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				cleanup()
				return
			}

			var msg clientMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				continue
			}

			switch msg.Type {
			case "select_day":
				if msg.Date != "" {
					controller.SetActiveDate(msg.Date)
				}
			case "refetch":
				controller.Refetch()
			}
		}
	}
}
