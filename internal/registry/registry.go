package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

// LoggerProvider — отдаёт логгер по идентификатору из конфигурации.
// Неизвестный идентификатор — ErrUnknownLogger.
type LoggerProvider interface {
	Logger(id string) (ports.Logger, error)
}

// SessionProvider — открывает сессию по идентификатору; каждый вызов — отдельная сессия.
// Неизвестный идентификатор — ErrUnknownSession.
type SessionProvider interface {
	Session(ctx context.Context, id string) (ports.Session, error)
}

var _ ports.ConsumerStatusReader = (*Registry)(nil)

// Registry — собирает ConsumerHandler для каждого зарегистрированного консьюмера
// из значений по умолчанию и именованных переопределений.
type Registry struct {
	defaults  Settings
	overrides map[string]Override
	loggers   LoggerProvider
	provider  SessionProvider
	sleeper   ports.Sleeper

	mu       sync.Mutex
	handlers map[string]*handler.ConsumerHandler
	settings map[string]Settings
	sessions map[string]ports.Session
}

// New — конструктор. Ключи overrides нормализуются; два ключа с одинаковой
// нормальной формой ("my-consumer" и "my_consumer") — ErrDuplicateOverride.
func New(
	defaults Settings,
	overrides map[string]Override,
	loggers LoggerProvider,
	sessions SessionProvider,
	sleeper ports.Sleeper,
) (*Registry, error) {
	normalized, err := normalizeOverrides(overrides)
	if err != nil {
		return nil, err
	}
	return &Registry{
		defaults:  defaults,
		overrides: normalized,
		loggers:   loggers,
		provider:  sessions,
		sleeper:   sleeper,
		handlers:  make(map[string]*handler.ConsumerHandler),
		settings:  make(map[string]Settings),
		sessions:  make(map[string]ports.Session),
	}, nil
}

// Register — создаёт обработчик для консьюмера name, который останавливается через dequeuer.
func (r *Registry) Register(ctx context.Context, name string, dequeuer ports.Dequeuer) (*handler.ConsumerHandler, error) {
	key := NormalizeName(name)
	if key == "" {
		return nil, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[key]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateConsumer, key)
	}

	var override *Override
	if o, ok := r.overrides[key]; ok {
		override = &o
	}
	s := r.defaults.Merge(override)

	logger, err := r.loggers.Logger(s.LoggerID)
	if err != nil {
		return nil, fmt.Errorf("consumer %s: %w", key, err)
	}
	session, err := r.provider.Session(ctx, s.SessionID)
	if err != nil {
		return nil, fmt.Errorf("consumer %s: %w", key, err)
	}

	h := handler.New(handler.Config{
		Name:                      key,
		StopSleepSeconds:          s.StopSleepSeconds,
		ClearSessionBeforeMessage: s.ClearSession,
	}, dequeuer, logger, session, r.sleeper)

	r.handlers[key] = h
	r.settings[key] = s
	r.sessions[key] = session
	return h, nil
}

// Validate — проверяет, что каждое переопределение относится к зарегистрированному консьюмеру.
// Вызывается после регистрации всех консьюмеров и до старта обработки.
func (r *Registry) Validate() error {
	r.mu.Lock()
	registered := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		registered = append(registered, name)
	}
	r.mu.Unlock()

	return checkUnused(registered, r.overrides)
}

// Handler — обработчик по имени (имя нормализуется).
func (r *Registry) Handler(name string) (*handler.ConsumerHandler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handlers[NormalizeName(name)]
	return h, ok
}

// Settings — итоговые параметры, с которыми собран обработчик.
func (r *Registry) Settings(name string) (Settings, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[NormalizeName(name)]
	return s, ok
}

// Session — сессия, выданная консьюмеру при регистрации. Через неё же
// консьюмер пишет в хранилище, чтобы очистка перед сообщением касалась его данных.
func (r *Registry) Session(name string) (ports.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[NormalizeName(name)]
	return s, ok
}

// Handlers — все обработчики в порядке имён.
func (r *Registry) Handlers() []*handler.ConsumerHandler {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*handler.ConsumerHandler, 0, len(names))
	for _, name := range names {
		out = append(out, r.handlers[name])
	}
	return out
}

// ConsumerStatuses — снимок для health-эндпоинтов, в порядке имён.
func (r *Registry) ConsumerStatuses() []domain.ConsumerStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.ConsumerStatus, 0, len(names))
	for _, name := range names {
		s := r.settings[name]
		out = append(out, domain.ConsumerStatus{
			Name:             name,
			StopRequested:    r.handlers[name].StopRequested(),
			StopSleepSeconds: s.StopSleepSeconds,
			ClearSession:     s.ClearSession,
			LoggerID:         s.LoggerID,
			SessionID:        s.SessionID,
		})
	}
	return out
}

// CheckOverrides — та же проверка, что Validate, но без сборки обработчиков
// (для утилиты проверки конфигурации).
func CheckOverrides(consumers []string, overrides map[string]Override) error {
	normalized, err := normalizeOverrides(overrides)
	if err != nil {
		return err
	}
	registered := make([]string, 0, len(consumers))
	for _, c := range consumers {
		registered = append(registered, NormalizeName(c))
	}
	return checkUnused(registered, normalized)
}

func normalizeOverrides(overrides map[string]Override) (map[string]Override, error) {
	out := make(map[string]Override, len(overrides))
	for name, o := range overrides {
		key := NormalizeName(name)
		if key == "" {
			return nil, ErrEmptyName
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOverride, key)
		}
		out[key] = o
	}
	return out, nil
}

func checkUnused(registered []string, overrides map[string]Override) error {
	known := make(map[string]struct{}, len(registered))
	for _, name := range registered {
		known[name] = struct{}{}
	}

	var unused []string
	for name := range overrides {
		if _, ok := known[name]; !ok {
			unused = append(unused, name)
		}
	}
	if len(unused) == 0 {
		return nil
	}
	sort.Strings(unused)
	return &UnusedConsumerConfigError{Names: unused}
}
