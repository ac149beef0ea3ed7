package ports

import (
	"context"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
)

// MessageProcessor — бизнес-обработка одного сообщения; решает, что сказать брокеру.
type MessageProcessor interface {
	Process(ctx context.Context, msg *domain.Message) (domain.Outcome, error)
}
