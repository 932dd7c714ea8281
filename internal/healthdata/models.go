package healthdata

// Kind определяет тип образца здоровья
type Kind string

const (
	KindSteps Kind = "steps"
	KindSleep Kind = "sleep"
)

// Sample — сырой образец от провайдера устройства.
// Start может быть полной меткой времени или голой датой YYYY-MM-DD.
// Для сна Value хранит часы; если Value == 0 и задан End, часы
// выводятся из интервала Start..End перед нормализацией.
type Sample struct {
	Start string  `json:"start"`
	End   string  `json:"end,omitempty"`
	Value float64 `json:"value"`
}

type PermissionSpec struct {
	Read []Kind `json:"read"`
}

type DailyPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type DailyResponse struct {
	Kind Kind         `json:"kind"`
	Demo bool         `json:"demo"`
	Days []DailyPoint `json:"days"`
}

type HourlyResponse struct {
	Kind Kind        `json:"kind"`
	Date string      `json:"date"`
	Demo bool        `json:"demo"`
	Bins [24]float64 `json:"bins"`
}

type ImportResponse struct {
	Authorized   bool `json:"authorized"`
	Demo         bool `json:"demo"`
	StepSamples  int  `json:"step_samples"`
	SleepSamples int  `json:"sleep_samples"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
