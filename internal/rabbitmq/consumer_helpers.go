package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/pkg/ctxmeta"
)

// handle — одна доставка: обработчик решает, брокер получает ответ.
func (c *Consumer) handle(ctx context.Context, d *amqp.Delivery) {
	m := toDomain(c.name, d)
	ctx = ctxmeta.WithMessageID(ctx, m.ID)

	outcome := c.supervisor.ProcessMessage(ctx, c.callback(&m))
	if err := acknowledge(d, outcome); err != nil {
		c.log.Warnf(ctx, "%s failed delivery_tag=%d: %v", outcome, d.DeliveryTag, err)
	}
}

// callback — вызов процессора с таймаутом на обработку.
func (c *Consumer) callback(m *domain.Message) handler.Callback {
	return func(ctx context.Context, _ *handler.ConsumerHandler) (domain.Outcome, error) {
		ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
		defer cancel()
		return c.processor.Process(ctxTimeout, m)
	}
}

// cancel — отменяет подписку; ошибка только логируется (канал мог уже закрыться).
func (c *Consumer) cancel(ctx context.Context) {
	if err := c.ch.Cancel(c.tag, false); err != nil {
		c.log.Warnf(ctx, "basic.cancel tag=%s: %v", c.tag, err)
	}
}

// acknowledge — ответ брокеру по коду обработчика.
func acknowledge(d *amqp.Delivery, outcome domain.Outcome) error {
	switch outcome {
	case domain.OutcomeAck:
		return d.Ack(false)
	case domain.OutcomeReject:
		return d.Reject(false)
	case domain.OutcomeRejectRequeue:
		return d.Reject(true)
	case domain.OutcomeSingleNackRequeue:
		return d.Nack(false, true)
	default:
		return d.Reject(true)
	}
}

// toDomain — доставка в нейтральном виде.
// Без message-id идентификатор выводится из тела (UUID v5), чтобы повторная доставка дала тот же id.
func toDomain(consumer string, d *amqp.Delivery) domain.Message {
	headers := make(map[string]string, len(d.Headers))
	for k, v := range d.Headers {
		headers[k] = fmt.Sprint(v)
	}
	if d.CorrelationId != "" {
		headers["correlation_id"] = d.CorrelationId
	}

	id := d.MessageId
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceOID, d.Body).String()
	}

	receivedAt := d.Timestamp
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	return domain.Message{
		ID:         id,
		Consumer:   consumer,
		Key:        d.RoutingKey,
		Payload:    d.Body,
		Headers:    headers,
		ReceivedAt: receivedAt,
	}
}
