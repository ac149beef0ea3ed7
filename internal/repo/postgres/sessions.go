package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/internal/registry"
)

var _ registry.SessionProvider = (*Sessions)(nil)

// Sessions — открывает сессии по идентификатору; каждый вызов — новое соединение.
type Sessions struct {
	dsns map[string]string
	log  ports.Logger

	mu     sync.Mutex
	opened []*Session
}

// NewSessions — defaultDSN обслуживает идентификатор "default", extra — остальные.
func NewSessions(defaultDSN string, extra map[string]string, log ports.Logger) *Sessions {
	dsns := make(map[string]string, len(extra)+1)
	for id, dsn := range extra {
		dsns[id] = dsn
	}
	if defaultDSN != "" {
		dsns[registry.DefaultSessionID] = defaultDSN
	}
	return &Sessions{dsns: dsns, log: log}
}

func (p *Sessions) Session(ctx context.Context, id string) (ports.Session, error) {
	if id == registry.NoneID {
		return handler.NopSession{}, nil
	}
	dsn, ok := p.dsns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownSession, id)
	}

	s, err := Connect(ctx, dsn, p.log)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	p.mu.Lock()
	p.opened = append(p.opened, s)
	p.mu.Unlock()
	return s, nil
}

// Close — закрывает все открытые сессии.
func (p *Sessions) Close(ctx context.Context) error {
	p.mu.Lock()
	opened := p.opened
	p.opened = nil
	p.mu.Unlock()

	var errs []error
	for _, s := range opened {
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
