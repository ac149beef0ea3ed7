package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/pkg/metrics"
)

var (
	_ ports.MessageConsumer = (*Consumer)(nil)
	_ ports.Dequeuer        = (*Consumer)(nil)
)

var (
	// ErrNotSupervised — Run вызван до Supervise.
	ErrNotSupervised = errors.New("rabbitmq consumer has no handler")
	// ErrDeliveriesClosed — брокер закрыл канал доставок (канал или соединение упали).
	ErrDeliveriesClosed = errors.New("rabbitmq deliveries channel closed")
)

// ConsumerConfig — параметры одного консьюмера очереди.
type ConsumerConfig struct {
	Name           string
	Queue          string
	Prefetch       int
	ProcessTimeout time.Duration
}

// Consumer — цикл basic.consume с ручным подтверждением.
type Consumer struct {
	name           string
	queue          string
	tag            string
	prefetch       int
	processTimeout time.Duration

	ch         channel
	processor  ports.MessageProcessor
	supervisor *handler.ConsumerHandler
	log        ports.Logger

	stopped   atomic.Bool
	stopCh    chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
}

// NewConsumer — канал принадлежит консьюмеру и закрывается в Close.
func NewConsumer(ch channel, cfg *ConsumerConfig, log ports.Logger) *Consumer {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Queue
	}

	return &Consumer{
		name:           name,
		queue:          cfg.Queue,
		tag:            "ctag_" + name + "_" + uuid.NewString()[:8],
		prefetch:       prefetch,
		processTimeout: pt,
		ch:             ch,
		log:            log,
		stopCh:         make(chan struct{}),
	}
}

// Name — имя консьюмера.
func (c *Consumer) Name() string { return c.name }

// Supervise — привязывает обработчик и процессор. Вызывается один раз до Run.
func (c *Consumer) Supervise(h *handler.ConsumerHandler, processor ports.MessageProcessor) {
	c.supervisor = h
	c.processor = processor
}

// ForceStop — цикл завершится после текущего сообщения, подписка будет отменена.
func (c *Consumer) ForceStop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		close(c.stopCh)
	})
}

// Run — основной цикл: доставка → обработчик → ack/reject/nack по его решению.
// После ForceStop возвращает ErrConsumerStopped.
func (c *Consumer) Run(ctx context.Context) error {
	if c.supervisor == nil || c.processor == nil {
		return ErrNotSupervised
	}

	// fair dispatch
	if err := c.ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.ch.Consume(
		c.queue,
		c.tag,
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	c.log.Infof(ctx, "rabbitmq consumer %s started queue=%s tag=%s prefetch=%d", c.name, c.queue, c.tag, c.prefetch)

	for {
		select {
		case <-ctx.Done():
			c.cancel(ctx)
			return ctx.Err()

		case <-c.stopCh:
			c.cancel(ctx)
			return ports.ErrConsumerStopped

		case d, ok := <-deliveries:
			if !ok {
				if c.stopped.Load() {
					return ports.ErrConsumerStopped
				}
				return ErrDeliveriesClosed
			}

			metrics.MessagesConsumed.WithLabelValues(c.name).Inc()
			c.handle(ctx, &d)

			if c.stopped.Load() {
				c.cancel(ctx)
				return ports.ErrConsumerStopped
			}
		}
	}
}

// Close — закрывает канал; неподтверждённые доставки брокер вернёт в очередь.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.ch.Close()
	})
	return retErr
}
