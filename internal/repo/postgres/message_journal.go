package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

var _ ports.MessageReadService = (*MessageJournal)(nil)

// Querier — чтение; обычно *pgxpool.Pool, чтобы не занимать сессии консьюмеров.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MessageJournal — чтение журнала consumed_messages.
type MessageJournal struct {
	db Querier
}

func NewMessageJournal(db Querier) *MessageJournal { return &MessageJournal{db: db} }

const selectMessage = `
	SELECT consumer, id, message_key, payload, headers, received_at
	FROM consumed_messages`

// GetMessage — (nil, nil), если такой записи нет.
func (j *MessageJournal) GetMessage(ctx context.Context, consumer, id string) (*domain.Message, error) {
	row := j.db.QueryRow(ctx, selectMessage+` WHERE consumer = $1 AND id = $2`, consumer, id)

	msg, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return msg, nil
}

// MessagesByConsumer — последние сообщения консьюмера, новые первыми.
func (j *MessageJournal) MessagesByConsumer(ctx context.Context, consumer string, limit, offset int) ([]*domain.Message, error) {
	rows, err := j.db.Query(ctx, selectMessage+`
		WHERE consumer = $1
		ORDER BY received_at DESC, id
		LIMIT $2 OFFSET $3`, consumer, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Message, 0, limit)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("messages rows: %w", err)
	}
	return out, nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	if err := row.Scan(&m.Consumer, &m.ID, &m.Key, &m.Payload, &m.Headers, &m.ReceivedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
