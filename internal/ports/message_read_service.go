package ports

import (
	"context"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
)

// MessageReadService — чтение журнала обработанных сообщений.
// GetMessage возвращает (nil, nil), если сообщения нет.
type MessageReadService interface {
	GetMessage(ctx context.Context, consumer, id string) (*domain.Message, error)
	MessagesByConsumer(ctx context.Context, consumer string, limit, offset int) ([]*domain.Message, error)
}
