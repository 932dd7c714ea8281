package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity types accepted by the log
var ValidActivityTypes = []string{"walk", "run", "cycle", "swim", "gym", "yoga", "other"}

// ActivityLogDTO — запись об активности для клиента
type ActivityLogDTO struct {
	ID             uuid.UUID `json:"id"`
	Date           string    `json:"date"`
	ActivityType   string    `json:"activity_type"`
	DurationMin    int       `json:"duration_min"`
	CaloriesBurned float64   `json:"calories_burned"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateLogRequest struct {
	Date           string  `json:"date"`
	ActivityType   string  `json:"activity_type"`
	DurationMin    int     `json:"duration_min"`
	CaloriesBurned float64 `json:"calories_burned"`
}

type LogsResponse struct {
	Logs []ActivityLogDTO `json:"logs"`
}

// DailyActivity — суммарная активность за день
type DailyActivity struct {
	DurationMin    int     `json:"duration_min"`
	CaloriesBurned float64 `json:"calories_burned"`
}

type SummaryResponse struct {
	Date    string        `json:"date"`
	Summary DailyActivity `json:"summary"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
