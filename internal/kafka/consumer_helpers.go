package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/pkg/ctxmeta"
)

// HeaderMessageID — заголовок, из которого берётся идентификатор сообщения.
const HeaderMessageID = "message_id"

// deliver — обрабатывает сообщение до ack/reject, повторяя его при requeue.
// Ошибка означает, что цикл должен завершиться.
func (c *Consumer) deliver(ctx, runCtx context.Context, msg *kafka.Message) error {
	m := toDomain(c.name, msg)
	ctx = ctxmeta.WithMessageID(ctx, m.ID)

	for {
		outcome := c.supervisor.ProcessMessage(ctx, c.callback(&m))

		// Решённый ack/reject коммитится и при запрошенной остановке.
		if !outcome.Requeue() {
			c.commitSafely(ctx, msg)
			if c.stopped.Load() {
				return ports.ErrConsumerStopped
			}
			return nil
		}

		// Requeue после остановки: оффсет не коммитим, после перезапуска сообщение придёт снова.
		if c.stopped.Load() {
			return ports.ErrConsumerStopped
		}

		// Пауза с джиттером перед повтором,
		// чтобы разнести повторные попытки во времени и снизить нагрузку на внешние зависимости.
		c.log.Warnf(ctx, "message %s requeued (%s), will retry", describe(msg), outcome)
		if !c.sleepWithBackoff(runCtx, c.withJitterEqual(minDuration(c.retryInitial, 500*time.Millisecond))) {
			return c.exitErr(ctx)
		}
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

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed %s: %v", describe(msg), commitErr)
	}
}

// exitErr — причина выхода из цикла после прерванного ожидания.
func (c *Consumer) exitErr(ctx context.Context) error {
	if c.stopped.Load() {
		return ports.ErrConsumerStopped
	}
	return ctx.Err()
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}

// minDuration возвращает минимальное время из двух.
func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

// toDomain — сообщение Kafka в нейтральном виде.
// Без заголовка message_id идентификатором служит topic/partition/offset: он стабилен при повторной доставке.
func toDomain(consumer string, msg *kafka.Message) domain.Message {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	id := headers[HeaderMessageID]
	if id == "" {
		id = msg.Topic + "/" + strconv.Itoa(msg.Partition) + "/" + strconv.FormatInt(msg.Offset, 10)
	}

	receivedAt := msg.Time
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	return domain.Message{
		ID:         id,
		Consumer:   consumer,
		Key:        string(msg.Key),
		Payload:    msg.Value,
		Headers:    headers,
		ReceivedAt: receivedAt,
	}
}

// describe — topic[partition]@offset для логов.
func describe(msg *kafka.Message) string {
	return fmt.Sprintf("%s[%d]@%d", msg.Topic, msg.Partition, msg.Offset)
}
