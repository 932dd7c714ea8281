package habits

import (
	"time"

	"github.com/google/uuid"
)

// HabitDTO — привычка с отметкой выполнения за запрошенный день
type HabitDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateHabitRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type HabitsResponse struct {
	Date   string     `json:"date"`
	Habits []HabitDTO `json:"habits"`
}

// DailyCompletion — сколько привычек закрыто за день
type DailyCompletion struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
