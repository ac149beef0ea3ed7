package config_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/consumer_handler/config"
	"github.com/Gunvolt24/consumer_handler/internal/registry"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("CONSUMER_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second || c.HTTP.GracefulTimeout != 10*time.Second {
		t.Fatalf("HTTP header/idle/graceful timeouts wrong: %+v", c.HTTP)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "consumer-handler" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Postgres
	if c.Postgres.DSN == "" || !c.Postgres.Migrate || len(c.Postgres.Sessions) != 0 || c.Postgres.MaxConns != 4 {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}

	// Broker
	if c.Broker.Kind != cfg.BrokerKafka {
		t.Fatalf("Broker.Kind: want kafka, got %q", c.Broker.Kind)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) || c.Kafka.GroupID != "consumer-handler" || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProcessTimeout != 5*time.Second || c.Kafka.RetryInitial != time.Second || c.Kafka.RetryMax != 30*time.Second {
		t.Fatalf("Kafka timeouts wrong: %+v", c.Kafka)
	}
	if c.RabbitMQ.Prefetch != 1 || c.RabbitMQ.ProcessTimeout != 5*time.Second || c.RabbitMQ.URL == "" {
		t.Fatalf("RabbitMQ defaults wrong: %+v", c.RabbitMQ)
	}
	if len(c.Consumers) != 1 || c.Consumers["default"] != "events" {
		t.Fatalf("Consumers default wrong: %v", c.Consumers)
	}

	// Handler
	want := registry.DefaultSettings()
	if got := c.Handler.Defaults(); got != want {
		t.Fatalf("Handler defaults: want %+v, got %+v", want, got)
	}
	if len(c.Overrides) != 0 {
		t.Fatalf("Overrides: want none, got %v", c.Overrides)
	}

	// Cache
	if c.Cache.Capacity != 10000 || c.Cache.TTL != 10*time.Minute {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Validation
	if c.Validation.MaxPayload != 1<<20 || !c.Validation.RequireJSON {
		t.Fatalf("Validation defaults wrong: %+v", c.Validation)
	}
	if c.HTTP.HandlerTimeout != 2*time.Second {
		t.Fatalf("HTTP.HandlerTimeout: want 2s, got %v", c.HTTP.HandlerTimeout)
	}

	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "CONSUMER_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_GRACEFUL_TIMEOUT", "3s")
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv(p+"_POSTGRES_SESSIONS", "reporting:postgres://u:p@h:5432/rep")
	t.Setenv(p+"_POSTGRES_MIGRATE", "false")
	t.Setenv(p+"_BROKER_KIND", "rabbitmq")
	t.Setenv(p+"_RABBITMQ_URL", "amqp://u:p@mq:5672/")
	t.Setenv(p+"_RABBITMQ_PREFETCH", "10")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_CONSUMERS", "orders:orders-queue,my-consumer:mine")
	t.Setenv(p+"_HANDLER_STOP_SLEEP_SECONDS", "false")
	t.Setenv(p+"_HANDLER_CLEAR_SESSION", "false")
	t.Setenv(p+"_HANDLER_OVERRIDES", "my-consumer")
	t.Setenv(p+"_CONSUMER_MY_CONSUMER_STOP_SLEEP_SECONDS", "3")
	t.Setenv(p+"_CONSUMER_MY_CONSUMER_LOGGER", "my_custom_logger")
	t.Setenv(p+"_CACHE_CAPACITY", "777")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || c.HTTP.GracefulTimeout != 3*time.Second {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.Postgres.Sessions["reporting"] != "postgres://u:p@h:5432/rep" || c.Postgres.Migrate {
		t.Fatalf("Postgres overrides wrong: %+v", c.Postgres)
	}
	if c.Broker.Kind != cfg.BrokerRabbitMQ || c.RabbitMQ.URL != "amqp://u:p@mq:5672/" || c.RabbitMQ.Prefetch != 10 {
		t.Fatalf("RabbitMQ overrides wrong: %+v %+v", c.Broker, c.RabbitMQ)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) {
		t.Fatalf("Kafka.Brokers override wrong: %v", c.Kafka.Brokers)
	}
	if c.Consumers["orders"] != "orders-queue" || c.Consumers["my-consumer"] != "mine" {
		t.Fatalf("Consumers override wrong: %v", c.Consumers)
	}
	if c.Cache.Capacity != 777 || !c.Logger.IsProd {
		t.Fatalf("Cache/Logger overrides wrong: %+v %+v", c.Cache, c.Logger)
	}

	// false → 0
	def := c.Handler.Defaults()
	if def.StopSleepSeconds != 0 || def.ClearSession {
		t.Fatalf("Handler defaults override wrong: %+v", def)
	}

	o, ok := c.Overrides["my_consumer"]
	if !ok {
		t.Fatalf("override for my_consumer not loaded: %v", c.Overrides)
	}
	merged := def.Merge(ptr(o.Override()))
	want := registry.Settings{StopSleepSeconds: 3, ClearSession: false, LoggerID: "my_custom_logger", SessionID: "default"}
	if merged != want {
		t.Fatalf("merged override: want %+v, got %+v", want, merged)
	}

	ro := c.RegistryOverrides()
	if ro["my_consumer"].ClearSession != nil || ro["my_consumer"].SessionID != nil {
		t.Fatalf("unset fields must stay nil: %+v", ro["my_consumer"])
	}
}

func ptr[T any](v T) *T { return &v }

func TestLoadWithPrefix_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		is    error
	}{
		{"bad duration", "_HTTP_READ_TIMEOUT", "not-a-duration", nil},
		{"negative seconds", "_HANDLER_STOP_SLEEP_SECONDS", "-1", cfg.ErrNegativeSeconds},
		{"garbage seconds", "_HANDLER_STOP_SLEEP_SECONDS", "soon", nil},
		{"unknown broker", "_BROKER_KIND", "nats", cfg.ErrUnknownBroker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const p = "CONSUMER_TEST_BAD"
			t.Setenv(p+tt.key, tt.value)

			_, err := cfg.LoadWithPrefix(p)
			if err == nil {
				t.Fatalf("expected error for %s=%q, got nil", tt.key, tt.value)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("want %v, got %v", tt.is, err)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	const p = "CONSUMER_TEST_LO"
	t.Setenv(p+"_CONSUMER_FAST_STOP_SLEEP_SECONDS", "off")
	t.Setenv(p+"_CONSUMER_FAST_CLEAR_SESSION", "false")
	t.Setenv(p+"_CONSUMER_FAST_SESSION", "none")

	got, err := cfg.LoadOverrides(p, []string{"fast", "quiet"})
	if err != nil {
		t.Fatalf("LoadOverrides error: %v", err)
	}

	fast := got["fast"].Override()
	if fast.StopSleepSeconds == nil || *fast.StopSleepSeconds != 0 {
		t.Fatalf("fast sleep: want explicit 0, got %v", fast.StopSleepSeconds)
	}
	if fast.ClearSession == nil || *fast.ClearSession {
		t.Fatalf("fast clear: want explicit false, got %v", fast.ClearSession)
	}
	if fast.SessionID == nil || *fast.SessionID != registry.NoneID || fast.LoggerID != nil {
		t.Fatalf("fast ids wrong: %+v", fast)
	}

	// Ничего не задано — всё по умолчанию, но имя известно (для проверки неиспользованных).
	quiet, ok := got["quiet"]
	if !ok {
		t.Fatalf("quiet override missing")
	}
	if q := quiet.Override(); q.StopSleepSeconds != nil || q.ClearSession != nil || q.LoggerID != nil || q.SessionID != nil {
		t.Fatalf("quiet override must be empty: %+v", q)
	}

	if _, err := cfg.LoadOverrides(p, []string{"a-b", "A_B"}); !errors.Is(err, registry.ErrDuplicateOverride) {
		t.Fatalf("want ErrDuplicateOverride, got %v", err)
	}
}

func TestSecondsDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"false", 0, false},
		{"FALSE", 0, false},
		{"off", 0, false},
		{"no", 0, false},
		{"0", 0, false},
		{"1", 1, false},
		{" 5 ", 5, false},
		{"-2", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		var s cfg.Seconds
		err := s.Decode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Decode(%q): wantErr=%v, got %v", tt.in, tt.wantErr, err)
		}
		if !tt.wantErr && s.Int() != tt.want {
			t.Fatalf("Decode(%q): want %d, got %d", tt.in, tt.want, s.Int())
		}
	}
}

func TestOverridePrefix(t *testing.T) {
	t.Parallel()

	if got := cfg.OverridePrefix("CONSUMER", "my-consumer"); got != "CONSUMER_CONSUMER_MY_CONSUMER" {
		t.Fatalf("OverridePrefix: got %q", got)
	}
}
