package sleep

import (
	"time"

	"github.com/google/uuid"
)

// SleepLogDTO — запись о сне для клиента
type SleepLogDTO struct {
	ID       uuid.UUID `json:"id"`
	Date     string    `json:"date"` // день пробуждения
	BedTime  time.Time `json:"bed_time"`
	WakeTime time.Time `json:"wake_time"`
	Hours    float64   `json:"hours"`
	Quality  int       `json:"quality"`
}

// CreateSleepLogRequest — запрос на создание записи.
// Время задаётся часами-минутами относительно дня пробуждения;
// отбой позже подъёма означает, что заснули накануне.
type CreateSleepLogRequest struct {
	Date     string `json:"date"`
	BedTime  string `json:"bed_time"`  // HH:MM
	WakeTime string `json:"wake_time"` // HH:MM
	Quality  int    `json:"quality"`   // 1..5
}

type LogsResponse struct {
	Logs []SleepLogDTO `json:"logs"`
}

type SummaryResponse struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"total_hours"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
