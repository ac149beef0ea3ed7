package handler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/pkg/ctxmeta"
	"github.com/Gunvolt24/consumer_handler/pkg/metrics"
	"github.com/Gunvolt24/consumer_handler/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Причины остановки консьюмера (попадают в лог и в метку метрики).
const (
	ReasonUncaughtException = "uncaught exception"
	ReasonSessionClosed     = "session was closed"
)

// ErrInvalidOutcome — колбэк вернул код, не входящий в множество известных.
var ErrInvalidOutcome = errors.New("callback returned invalid outcome")

// PanicError — паника внутри колбэка, превращённая в ошибку.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in message callback: %v", e.Value)
}

// Unwrap — если паниковали значением-ошибкой, она доступна через errors.Is/As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Callback — собственно обработка сообщения. Получает обработчик,
// чтобы при необходимости запросить остановку прямо во время обработки.
type Callback func(ctx context.Context, h *ConsumerHandler) (domain.Outcome, error)

// Config — параметры одного обработчика.
type Config struct {
	Name                      string
	StopSleepSeconds          int
	ClearSessionBeforeMessage bool
}

// ConsumerHandler — обёртка над колбэком, один экземпляр на зарегистрированный консьюмер.
type ConsumerHandler struct {
	name             string
	stopSleepSeconds int
	clearSession     bool

	dequeuer ports.Dequeuer
	log      ports.Logger
	session  ports.Session
	sleeper  ports.Sleeper

	// stopRequested — однократная защёлка: после установки побочных эффектов остановки больше нет.
	stopRequested atomic.Bool
}

// New — конструктор. Все четыре зависимости обязательны; при отсутствии
// логгера или сессии передавайте NopLogger / NopSession.
func New(
	cfg Config,
	dequeuer ports.Dequeuer,
	log ports.Logger,
	session ports.Session,
	sleeper ports.Sleeper,
) *ConsumerHandler {
	sleep := cfg.StopSleepSeconds
	if sleep < 0 {
		sleep = 0
	}
	return &ConsumerHandler{
		name:             cfg.Name,
		stopSleepSeconds: sleep,
		clearSession:     cfg.ClearSessionBeforeMessage,
		dequeuer:         dequeuer,
		log:              log,
		session:          session,
		sleeper:          sleeper,
	}
}

// Name — имя консьюмера, к которому привязан обработчик.
func (h *ConsumerHandler) Name() string { return h.name }

// StopRequested — была ли уже запрошена остановка.
func (h *ConsumerHandler) StopRequested() bool { return h.stopRequested.Load() }

// ProcessMessage — выполняет колбэк и возвращает код подтверждения для цикла брокера.
// Ошибка, паника или неизвестный код колбэка → лог, остановка консьюмера, OutcomeRejectRequeue.
// После любого исхода проверяется пригодность сессии. Ошибки наружу не выходят.
func (h *ConsumerHandler) ProcessMessage(ctx context.Context, callback Callback) (outcome domain.Outcome) {
	ctx = ctxmeta.WithConsumer(ctx, h.name)
	ctx, span := telemetry.Tracer().Start(ctx, "consumer.process_message",
		trace.WithAttributes(attribute.String("consumer.name", h.name)),
	)
	defer func() {
		span.SetAttributes(attribute.String("consumer.outcome", outcome.String()))
		metrics.MessagesProcessed.WithLabelValues(h.name, outcome.String()).Inc()
		span.End()
	}()

	// Выполняется всегда, в том числе после паники и после уже запрошенной остановки.
	defer func() {
		if !h.session.IsUsable(ctx) {
			h.StopConsumer(ctx, ReasonSessionClosed)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			outcome = h.fail(ctx, span, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	if h.clearSession {
		h.session.Clear(ctx)
	}

	result, err := callback(ctx, h)
	if err == nil && !result.Valid() {
		err = fmt.Errorf("%w: %d", ErrInvalidOutcome, int(result))
	}
	if err != nil {
		return h.fail(ctx, span, err)
	}
	return result
}

// StopConsumer — просит цикл брокера остановиться после текущего сообщения.
// Повторные вызовы ничего не делают.
func (h *ConsumerHandler) StopConsumer(ctx context.Context, reason string) {
	if !h.stopRequested.CompareAndSwap(false, true) {
		return
	}

	h.Log(ctx, ports.LevelWarn, "consumer will be stopped, reason: %s", reason)
	h.dequeuer.ForceStop()
	metrics.ConsumerStops.WithLabelValues(h.name, reason).Inc()

	if h.stopSleepSeconds > 0 {
		h.sleeper.Sleep(h.stopSleepSeconds)
	}
}

// Log — запись в привязанный к консьюмеру логгер с заданным уровнем.
func (h *ConsumerHandler) Log(ctx context.Context, level ports.Level, format string, args ...any) {
	switch level {
	case ports.LevelError:
		h.log.Errorf(ctx, format, args...)
	case ports.LevelWarn:
		h.log.Warnf(ctx, format, args...)
	default:
		h.log.Infof(ctx, format, args...)
	}
}

// LogException — текст ошибки на уровне error плюс сама ошибка структурным полем.
func (h *ConsumerHandler) LogException(ctx context.Context, err error) {
	h.log.Errorw(ctx, err.Error(), "error", err)
}

func (h *ConsumerHandler) fail(ctx context.Context, span trace.Span, err error) domain.Outcome {
	metrics.CallbackFailures.WithLabelValues(h.name).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	h.LogException(ctx, err)
	h.StopConsumer(ctx, ReasonUncaughtException)

	return domain.OutcomeRejectRequeue
}
