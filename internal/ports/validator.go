package ports

import (
	"context"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
)

type MessageValidator interface {
	Validate(ctx context.Context, msg *domain.Message) error
}
