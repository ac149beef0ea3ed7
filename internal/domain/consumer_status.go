package domain

// ConsumerStatus — состояние зарегистрированного консьюмера для health-эндпоинтов.
type ConsumerStatus struct {
	Name             string `json:"name"`
	StopRequested    bool   `json:"stop_requested"`
	StopSleepSeconds int    `json:"stop_sleep_seconds"`
	ClearSession     bool   `json:"clear_session"`
	LoggerID         string `json:"logger"`
	SessionID        string `json:"session"`
}
