package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/pkg/validate"
)

var _ ports.MessageProcessor = (*MessageRecorder)(nil)

// MessageRecorder — прикладная логика консьюмера (без знаний о транспорте):
// валидирует сообщение и записывает его в журнал, отсекая повторные доставки.
type MessageRecorder struct {
	repo      ports.MessageRepository // журнал сообщений (обычно на сессии консьюмера)
	cache     ports.MessageCache      // уже обработанные id
	log       ports.Logger
	validator ports.MessageValidator
}

// NewMessageRecorder — DI-конструктор.
func NewMessageRecorder(
	repo ports.MessageRepository,
	cache ports.MessageCache,
	log ports.Logger,
	validator ports.MessageValidator,
) *MessageRecorder {
	return &MessageRecorder{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
	}
}

// Process — шаги:
//  1. id уже в кэше → ack (повторная доставка);
//  2. валидация: ErrInvalidMessage → reject, прочие ошибки возвращаются;
//  3. сохранение в журнал; ошибка возвращается как есть (обработчик остановит консьюмер);
//  4. запомнить id и подтвердить.
func (s *MessageRecorder) Process(ctx context.Context, msg *domain.Message) (domain.Outcome, error) {
	if msg == nil {
		return domain.OutcomeReject, nil
	}
	key := cacheKey(msg)

	if s.cache.Seen(ctx, key) {
		s.log.Infof(ctx, "duplicate message id=%s skipped", msg.ID)
		return domain.OutcomeAck, nil
	}

	if err := s.validator.Validate(ctx, msg); err != nil {
		if errors.Is(err, validate.ErrInvalidMessage) {
			s.log.Warnf(ctx, "invalid message id=%s: %v (rejected)", msg.ID, err)
			return domain.OutcomeReject, nil
		}
		return 0, fmt.Errorf("validate message %s: %w", msg.ID, err)
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return 0, fmt.Errorf("save message %s: %w", msg.ID, err)
	}

	s.cache.Remember(ctx, key)
	s.log.Infof(ctx, "message saved id=%s bytes=%d", msg.ID, len(msg.Payload))
	return domain.OutcomeAck, nil
}

// cacheKey — кэш общий для всех консьюмеров, поэтому id уточняется именем.
func cacheKey(msg *domain.Message) string {
	return msg.Consumer + "/" + msg.ID
}
