package postgres

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

var _ ports.Session = (*Session)(nil)

// txIdle — статус соединения вне транзакции (ReadyForQuery 'I').
const txIdle = 'I'

// Session — выделенное соединение консьюмера. Между сообщениями очищается,
// после ошибки очистки считается непригодным.
type Session struct {
	conn   *pgx.Conn
	log    ports.Logger
	broken atomic.Bool
}

// Connect — открывает соединение и проверяет его Ping.
func Connect(ctx context.Context, dsn string, log ports.Logger) (*Session, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Session{conn: conn, log: log}, nil
}

// Clear — откатывает незавершённую транзакцию и сбрасывает подготовленные выражения.
func (s *Session) Clear(ctx context.Context) {
	if s.conn.IsClosed() {
		return
	}

	if s.conn.PgConn().TxStatus() != txIdle {
		if _, err := s.conn.Exec(ctx, "ROLLBACK"); err != nil {
			s.markBroken(ctx, "rollback", err)
			return
		}
	}

	if err := s.conn.DeallocateAll(ctx); err != nil {
		s.markBroken(ctx, "deallocate", err)
	}
}

// IsUsable — соединение открыто и очистка не ломалась.
func (s *Session) IsUsable(_ context.Context) bool {
	return !s.conn.IsClosed() && !s.broken.Load()
}

// Exec — выполняет запрос в соединении сессии.
func (s *Session) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return s.conn.Exec(ctx, sql, args...)
}

// Close — закрывает соединение.
func (s *Session) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

func (s *Session) markBroken(ctx context.Context, op string, err error) {
	s.broken.Store(true)
	s.log.Errorf(ctx, "session %s failed: %v", op, err)
}
