package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

// Проверка, что MessageValidator удовлетворяет интерфейсу MessageValidator.
var _ ports.MessageValidator = (*MessageValidator)(nil)

// ErrInvalidMessage — базовая (sentinel error) ошибка валидации.
// Такое сообщение отбрасывается без повторной доставки.
var ErrInvalidMessage = errors.New("message validation failed")

// DefaultMaxPayload — предельный размер тела по умолчанию (1 MiB).
const DefaultMaxPayload = 1 << 20

// MessageValidator — структура для валидации сообщения.
type MessageValidator struct {
	maxPayload  int
	requireJSON bool
}

// Option — настройка валидатора.
type Option func(*MessageValidator)

// WithMaxPayload — предельный размер тела в байтах; 0 — без ограничения.
func WithMaxPayload(n int) Option {
	return func(v *MessageValidator) { v.maxPayload = n }
}

// WithJSONPayload — требовать, чтобы тело было корректным JSON.
func WithJSONPayload(require bool) Option {
	return func(v *MessageValidator) { v.requireJSON = require }
}

// NewMessageValidator — конструктор MessageValidator.
// Возвращает ErrInvalidMessage (с обёрнутой причиной) при любой проблеме.
func NewMessageValidator(opts ...Option) *MessageValidator {
	v := &MessageValidator{maxPayload: DefaultMaxPayload, requireJSON: true}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate — проверяет сообщение.
func (v *MessageValidator) Validate(_ context.Context, msg *domain.Message) error {
	if msg == nil {
		return fmt.Errorf("%w: сообщение не может быть nil", ErrInvalidMessage)
	}
	if msg.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidMessage)
	}
	if msg.Consumer == "" {
		return fmt.Errorf("%w: consumer обязателен", ErrInvalidMessage)
	}
	return v.validatePayload(msg.Payload)
}

// validatePayload — размер и формат тела.
func (v *MessageValidator) validatePayload(p []byte) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: пустое тело", ErrInvalidMessage)
	}
	if v.maxPayload > 0 && len(p) > v.maxPayload {
		return fmt.Errorf("%w: тело %d байт больше предела %d", ErrInvalidMessage, len(p), v.maxPayload)
	}
	if v.requireJSON && !json.Valid(p) {
		return fmt.Errorf("%w: тело не является корректным JSON", ErrInvalidMessage)
	}
	return nil
}
