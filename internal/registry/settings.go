package registry

import "strings"

// Идентификаторы по умолчанию для логгера и сессии.
const (
	DefaultLoggerID  = "default"
	DefaultSessionID = "default"

	DefaultStopSleepSeconds = 1 // совпадает со startsecs supervisord по умолчанию
)

// Settings — итоговые параметры обработчика одного консьюмера.
type Settings struct {
	StopSleepSeconds int
	ClearSession     bool
	LoggerID         string
	SessionID        string
}

// DefaultSettings — значения, если конфигурация ничего не задала.
func DefaultSettings() Settings {
	return Settings{
		StopSleepSeconds: DefaultStopSleepSeconds,
		ClearSession:     true,
		LoggerID:         DefaultLoggerID,
		SessionID:        DefaultSessionID,
	}
}

// Override — частичное переопределение для именованного консьюмера; nil — взять значение по умолчанию.
type Override struct {
	StopSleepSeconds *int
	ClearSession     *bool
	LoggerID         *string
	SessionID        *string
}

// Merge — накладывает переопределение на значения по умолчанию поле за полем.
func (s Settings) Merge(o *Override) Settings {
	if o == nil {
		return s
	}
	if o.StopSleepSeconds != nil {
		s.StopSleepSeconds = *o.StopSleepSeconds
	}
	if o.ClearSession != nil {
		s.ClearSession = *o.ClearSession
	}
	if o.LoggerID != nil {
		s.LoggerID = *o.LoggerID
	}
	if o.SessionID != nil {
		s.SessionID = *o.SessionID
	}
	return s
}

// NormalizeName — приводит имя консьюмера к каноническому виду:
// нижний регистр, без пробелов по краям, дефисы и точки → подчёркивания.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)
}
