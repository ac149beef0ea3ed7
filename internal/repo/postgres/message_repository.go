package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

// Проверка, что MessageRepository удовлетворяет интерфейсу MessageRepository.
var _ ports.MessageRepository = (*MessageRepository)(nil)

// Executor — то, на чём выполняются запросы: сессия консьюмера, пул или pgx.Conn.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// MessageRepository — журнал обработанных сообщений.
type MessageRepository struct {
	db Executor
}

// NewMessageRepository - конструктор MessageRepository.
func NewMessageRepository(db Executor) *MessageRepository { return &MessageRepository{db: db} }

// Save — идемпотентная вставка: повторная доставка того же сообщения ничего не меняет.
func (r *MessageRepository) Save(ctx context.Context, msg *domain.Message) error {
	if msg == nil || msg.ID == "" {
		return errors.New("message is empty or id is required")
	}
	if msg.Consumer == "" {
		return errors.New("consumer is required")
	}

	headers := msg.Headers
	if headers == nil {
		headers = map[string]string{}
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO consumed_messages (consumer, id, message_key, payload, headers, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (consumer, id) DO NOTHING
	`, msg.Consumer, msg.ID, msg.Key, msg.Payload, headers, msg.ReceivedAt); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}
