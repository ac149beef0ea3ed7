package kafka

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/pkg/metrics"
)

var (
	_ ports.MessageConsumer = (*Consumer)(nil)
	_ ports.Dequeuer        = (*Consumer)(nil)
)

// ErrNotSupervised — Run вызван до Supervise.
var ErrNotSupervised = errors.New("kafka consumer has no handler")

// Consumer — обёртка над kafka.Reader + зависимостями (processor, logger).
type Consumer struct {
	name           string
	reader         reader
	processor      ports.MessageProcessor
	supervisor     *handler.ConsumerHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand

	stopped   atomic.Bool
	stopCh    chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
// Процессор передаётся в Supervise: ему нужна сессия, которая выдаётся при регистрации консьюмера.
func NewConsumer(cfg *ConsumerConfig, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg, log)
}

func newConsumer(r reader, cfg *ConsumerConfig, log ports.Logger) *Consumer {
	// Параметры по умолчанию (если не заданы в конфиге)
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	name := cfg.Name
	if name == "" {
		name = cfg.Topic
	}

	return &Consumer{
		name:           name,
		reader:         r,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
		stopCh:     make(chan struct{}),
	}
}

// Name — имя консьюмера.
func (c *Consumer) Name() string { return c.name }

// Supervise — привязывает обработчик и процессор. Вызывается один раз до Run.
func (c *Consumer) Supervise(h *handler.ConsumerHandler, processor ports.MessageProcessor) {
	c.supervisor = h
	c.processor = processor
}

// ForceStop — цикл завершится после текущего сообщения; ожидание FetchMessage прерывается.
func (c *Consumer) ForceStop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		close(c.stopCh)
	})
}

// Run — основной цикл:
// 1) читаем сообщение без авто-коммита;
// 2) отдаём его обработчику;
// 3) ack/reject → CommitMessages;
// 4) requeue → пауза и повтор того же сообщения без коммита (at-least-once);
// 5) после ForceStop → ErrConsumerStopped; ack/reject текущего сообщения коммитится,
//    requeue — нет.
func (c *Consumer) Run(ctx context.Context) error {
	if c.supervisor == nil || c.processor == nil {
		return ErrNotSupervised
	}

	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer %s started topic=%s group_id=%s brokers=%v", c.name, rc.Topic, rc.GroupID, rc.Brokers)

	// Отмена по ForceStop, чтобы не висеть в FetchMessage.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.stopCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	// Экспоненциальный backoff на ошибках FetchMessage с equal-jitter
	retry := c.retryInitial

	for {
		if c.stopped.Load() {
			return ports.ErrConsumerStopped
		}

		msg, fetchErr := c.reader.FetchMessage(runCtx)
		if fetchErr != nil {
			if c.stopped.Load() {
				return ports.ErrConsumerStopped
			}
			// Если контекст отменен -> выходим
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Иначе - временная ошибка брокера/сети. Ожидаем и повторяем
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(runCtx, sleep) {
				return c.exitErr(ctx)
			}
			retry = c.nextBackoff(retry)
			continue
		}

		// Успешный FetchMessage -> сбрасываем интервал ожидания и инкрементим метрики
		retry = c.retryInitial
		metrics.MessagesConsumed.WithLabelValues(c.name).Inc()

		if err := c.deliver(ctx, runCtx, &msg); err != nil {
			return err
		}
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
