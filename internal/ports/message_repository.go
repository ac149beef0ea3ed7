package ports

import (
	"context"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
)

type MessageRepository interface {
	Save(ctx context.Context, msg *domain.Message) error
}
