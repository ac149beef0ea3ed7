package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/consumer_handler/config"
	cachemem "github.com/Gunvolt24/consumer_handler/internal/cache/memory"
	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/internal/kafka"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/internal/rabbitmq"
	"github.com/Gunvolt24/consumer_handler/internal/registry"
	"github.com/Gunvolt24/consumer_handler/internal/repo/postgres"
	"github.com/Gunvolt24/consumer_handler/internal/sleeper"
	rest "github.com/Gunvolt24/consumer_handler/internal/transport/http"
	"github.com/Gunvolt24/consumer_handler/internal/usecase"
	"github.com/Gunvolt24/consumer_handler/pkg/logger"
	"github.com/Gunvolt24/consumer_handler/pkg/metrics"
	"github.com/Gunvolt24/consumer_handler/pkg/telemetry"
	"github.com/Gunvolt24/consumer_handler/pkg/validate"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, консьюмеры).
type App struct {
	Logger          ports.Logger            // логгер
	HTTPServer      *http.Server            // HTTP-сервер
	Consumers       []ports.MessageConsumer // консьюмеры, у каждого свой обработчик
	gracefulTimeout time.Duration           // время ожидания HTTP-сервера и консьюмеров
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// supervised — консьюмер брокера, которого можно обернуть обработчиком.
type supervised interface {
	ports.MessageConsumer
	ports.Dequeuer
	Supervise(h *handler.ConsumerHandler, processor ports.MessageProcessor)
}

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// Ресурсы, открытые до ошибки, освобождаются здесь же.
func Bootstrap(ctx context.Context, cfg *config.Config) (_ *App, _ Cleanup, retErr error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Стек очистки: выполняется в обратном порядке.
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}
	defer func() {
		if retErr != nil {
			cleanup()
		}
	}()

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if terr := shutdownTrace(context.Background()); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	// Миграции журнала.
	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN, logg); err != nil {
			return nil, func() {}, err
		}
	}

	// Пул: чтение журнала и запись для консьюмеров без собственной сессии.
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return nil, func() {}, fmt.Errorf("postgres pool: %w", err)
	}
	closers = append(closers, pool.Close)

	// Сессии консьюмеров.
	sessions := postgres.NewSessions(cfg.Postgres.DSN, cfg.Postgres.Sessions, logg)
	closers = append(closers, func() {
		if serr := sessions.Close(context.Background()); serr != nil {
			logg.Warnf(ctx, "close sessions: %v", serr)
		}
	})

	loggers := loggersFor(cfg, logg)
	reg, err := registry.New(cfg.Handler.Defaults(), cfg.RegistryOverrides(), loggers, sessions, sleeper.New())
	if err != nil {
		return nil, func() {}, err
	}

	// Общие зависимости процессора.
	cache := cachemem.NewDedupCache(cfg.Cache.Capacity, cfg.Cache.TTL)
	validator := validate.NewMessageValidator(
		validate.WithMaxPayload(cfg.Validation.MaxPayload),
		validate.WithJSONPayload(cfg.Validation.RequireJSON),
	)

	newConsumer, closeBroker, err := brokerFactory(cfg, logg)
	if err != nil {
		return nil, func() {}, err
	}
	closers = append(closers, closeBroker)

	consumers := make([]ports.MessageConsumer, 0, len(cfg.Consumers))
	for _, raw := range sortedNames(cfg.Consumers) {
		// каноническое имя попадает в сообщения журнала, метрики и логи
		name := registry.NormalizeName(raw)
		c, cErr := newConsumer(name, cfg.Consumers[raw])
		if cErr != nil {
			return nil, func() {}, fmt.Errorf("consumer %s: %w", name, cErr)
		}
		closers = append(closers, func() {
			if err := c.Close(); err != nil {
				logg.Warnf(ctx, "consumer %s close error: %v", name, err)
			}
		})

		h, rErr := reg.Register(ctx, name, c)
		if rErr != nil {
			return nil, func() {}, rErr
		}

		// процессор пишет в тот же логгер, что и обработчик консьюмера
		settings, _ := reg.Settings(name)
		consumerLog, lErr := loggers.Logger(settings.LoggerID)
		if lErr != nil {
			return nil, func() {}, lErr
		}

		processor := usecase.NewMessageRecorder(repositoryFor(reg, name, pool), cache, consumerLog, validator)
		c.Supervise(h, processor)
		consumers = append(consumers, c)
	}

	// Переопределения для незарегистрированных имён — ошибка конфигурации.
	if err := reg.Validate(); err != nil {
		return nil, func() {}, err
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(reg, postgres.NewMessageJournal(pool), logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Consumers:       consumers,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	return app, cleanup, nil
}

// brokerFactory — конструктор консьюмеров выбранного брокера и закрытие общего соединения.
func brokerFactory(
	cfg *config.Config, logg ports.Logger,
) (func(name, source string) (supervised, error), func(), error) {
	switch cfg.Broker.Kind {
	case config.BrokerRabbitMQ:
		conn, err := rabbitmq.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, nil, err
		}
		closeConn := func() {
			if err := conn.Close(); err != nil {
				logg.Warnf(context.Background(), "amqp connection close: %v", err)
			}
		}
		return func(name, queue string) (supervised, error) {
			// отдельный канал на консьюмер: prefetch задаётся на канал
			ch, err := conn.Channel()
			if err != nil {
				return nil, err
			}
			return rabbitmq.NewConsumer(ch, &rabbitmq.ConsumerConfig{
				Name:           name,
				Queue:          queue,
				Prefetch:       cfg.RabbitMQ.Prefetch,
				ProcessTimeout: cfg.RabbitMQ.ProcessTimeout,
			}, logg), nil
		}, closeConn, nil

	case config.BrokerKafka:
		return func(name, topic string) (supervised, error) {
			return kafka.NewConsumer(&kafka.ConsumerConfig{
				Name:           name,
				Brokers:        cfg.Kafka.Brokers,
				Topic:          topic,
				GroupID:        cfg.Kafka.GroupID,
				StartOffset:    cfg.Kafka.StartOffset,
				ProcessTimeout: cfg.Kafka.ProcessTimeout,
				RetryInitial:   cfg.Kafka.RetryInitial,
				RetryMax:       cfg.Kafka.RetryMax,
			}, logg), nil
		}, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBroker, cfg.Broker.Kind)
	}
}

// repositoryFor — запись идёт через сессию консьюмера, чтобы её очистка и проверка
// касались того же соединения; без сессии ("none") — через пул.
func repositoryFor(reg *registry.Registry, name string, pool *pgxpool.Pool) *postgres.MessageRepository {
	if sess, ok := reg.Session(name); ok {
		if exec, ok := sess.(postgres.Executor); ok {
			return postgres.NewMessageRepository(exec)
		}
	}
	return postgres.NewMessageRepository(pool)
}

// loggersFor — логгер по умолчанию и именованные логгеры для всех упомянутых идентификаторов.
func loggersFor(cfg *config.Config, base *logger.ZapLogger) registry.StaticLoggers {
	out := registry.StaticLoggers{registry.DefaultLoggerID: base}

	ids := []string{cfg.Handler.Logger}
	for _, o := range cfg.Overrides {
		if o.Logger != nil {
			ids = append(ids, *o.Logger)
		}
	}
	for _, id := range ids {
		if _, ok := out[id]; ok || id == "" || id == registry.NoneID {
			continue
		}
		out[id] = base.Named(id)
	}
	return out
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run — запускает HTTP-сервер и консьюмеров; ждёт отмены контекста или остановки
// любого из них и гасит остальные. Остановка консьюмера по запросу обработчика
// считается штатной: процесс выходит с нулевым кодом, менеджер процессов его перезапустит.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	errCh := make(chan error, len(a.Consumers)+1)

	// Запуск консьюмеров.
	var consumersWG sync.WaitGroup
	for _, c := range a.Consumers {
		consumersWG.Add(1)
		go func() {
			defer consumersWG.Done()
			errCh <- c.Run(runCtx)
		}()
	}
	a.Logger.Infof(ctx, "%d consumer(s) starting", len(a.Consumers))

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		switch {
		case err == nil, errors.Is(err, ports.ErrConsumerStopped):
			a.Logger.Warnf(ctx, "consumer stopped, shutting down")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		default:
			a.Logger.Errorf(ctx, "background error: %v", err)
			runErr = err
		}
	}
	cancelRun()

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Close только после выхода из Run: иначе соединения сессий и reader
	// закрываются под сообщением, которое ещё обрабатывается.
	if !waitGroupTimeout(&consumersWG, gt) {
		a.Logger.Warnf(ctx, "consumers did not finish within %s, closing anyway", gt)
	}

	// Остановка консьюмеров.
	for _, c := range a.Consumers {
		if err := c.Close(); err != nil {
			a.Logger.Warnf(ctx, "consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}

// waitGroupTimeout — ждёт wg не дольше d; false, если время вышло.
func waitGroupTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
