package registry

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

// NoneID — зарезервированный идентификатор: логгер/сессия-заглушка.
const NoneID = "none"

// LoggerFunc — адаптер функции к LoggerProvider.
type LoggerFunc func(id string) (ports.Logger, error)

func (f LoggerFunc) Logger(id string) (ports.Logger, error) { return f(id) }

// SessionFunc — адаптер функции к SessionProvider.
type SessionFunc func(ctx context.Context, id string) (ports.Session, error)

func (f SessionFunc) Session(ctx context.Context, id string) (ports.Session, error) { return f(ctx, id) }

// StaticLoggers — логгеры по фиксированной таблице; NoneID всегда отдаёт NopLogger.
type StaticLoggers map[string]ports.Logger

func (s StaticLoggers) Logger(id string) (ports.Logger, error) {
	if id == NoneID {
		return handler.NopLogger{}, nil
	}
	if l, ok := s[id]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLogger, id)
}

// NopSessions — провайдер для консьюмеров без хранилища: только NoneID.
type NopSessions struct{}

func (NopSessions) Session(_ context.Context, id string) (ports.Session, error) {
	if id == NoneID {
		return handler.NopSession{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSession, id)
}
