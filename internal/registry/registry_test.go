package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/consumer_handler/internal/handler"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/internal/registry"
)

type fakeDequeuer struct{ stops int }

func (f *fakeDequeuer) ForceStop() { f.stops++ }

type fakeSleeper struct{ calls []int }

func (f *fakeSleeper) Sleep(seconds int) { f.calls = append(f.calls, seconds) }

type namedLogger struct {
	handler.NopLogger
	id string
}

// sessionRecorder — отдаёт новую NopSession и запоминает запрошенные идентификаторы.
type sessionRecorder struct{ ids []string }

func (s *sessionRecorder) Session(_ context.Context, id string) (ports.Session, error) {
	if id == "broken" {
		return nil, registry.ErrUnknownSession
	}
	s.ids = append(s.ids, id)
	return handler.NopSession{}, nil
}

func loggers() registry.StaticLoggers {
	return registry.StaticLoggers{
		"default":          namedLogger{id: "default"},
		"my_custom_logger": namedLogger{id: "my_custom_logger"},
	}
}

func TestRegister_DefaultAndCustomConfiguration(t *testing.T) {
	sessions := &sessionRecorder{}
	r, err := registry.New(registry.DefaultSettings(), map[string]registry.Override{
		"custom-configuration": {
			StopSleepSeconds: intPtr(3),
			ClearSession:     boolPtr(false),
			LoggerID:         strPtr("my_custom_logger"),
			SessionID:        strPtr("my_custom_session"),
		},
	}, loggers(), sessions, &fakeSleeper{})
	require.NoError(t, err)

	ctx := context.Background()
	hDefault, err := r.Register(ctx, "default_configuration", &fakeDequeuer{})
	require.NoError(t, err)
	hCustom, err := r.Register(ctx, "custom_configuration", &fakeDequeuer{})
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	require.Equal(t, "default_configuration", hDefault.Name())
	require.Equal(t, "custom_configuration", hCustom.Name())

	def, ok := r.Settings("default_configuration")
	require.True(t, ok)
	require.Equal(t, registry.DefaultSettings(), def)

	custom, ok := r.Settings("custom-configuration")
	require.True(t, ok)
	require.Equal(t, registry.Settings{
		StopSleepSeconds: 3,
		ClearSession:     false,
		LoggerID:         "my_custom_logger",
		SessionID:        "my_custom_session",
	}, custom)

	// Каждый консьюмер получает собственную сессию
	require.Equal(t, []string{"default", "my_custom_session"}, sessions.ids)

	got, ok := r.Handler("Custom-Configuration")
	require.True(t, ok)
	require.Same(t, hCustom, got)
	require.Len(t, r.Handlers(), 2)

	sess, ok := r.Session("custom-configuration")
	require.True(t, ok)
	require.Equal(t, handler.NopSession{}, sess)
	_, ok = r.Session("unknown")
	require.False(t, ok)
}

func TestRegister_HandlerStopsThroughOwnDequeuer(t *testing.T) {
	sl := &fakeSleeper{}
	r, err := registry.New(registry.DefaultSettings(), map[string]registry.Override{
		"fast": {StopSleepSeconds: intPtr(0)},
	}, loggers(), registry.SessionFunc(func(context.Context, string) (ports.Session, error) {
		return handler.NopSession{}, nil
	}), sl)
	require.NoError(t, err)

	slowDq, fastDq := &fakeDequeuer{}, &fakeDequeuer{}
	slow, err := r.Register(context.Background(), "slow", slowDq)
	require.NoError(t, err)
	fast, err := r.Register(context.Background(), "fast", fastDq)
	require.NoError(t, err)

	fast.StopConsumer(context.Background(), "test")
	require.Equal(t, 1, fastDq.stops)
	require.Equal(t, 0, slowDq.stops)
	require.Empty(t, sl.calls, "sleep disabled for fast")

	slow.StopConsumer(context.Background(), "test")
	require.Equal(t, 1, slowDq.stops)
	require.Equal(t, []int{1}, sl.calls)

	statuses := r.ConsumerStatuses()
	require.Len(t, statuses, 2)
	require.Equal(t, "fast", statuses[0].Name)
	require.True(t, statuses[0].StopRequested)
	require.Equal(t, 0, statuses[0].StopSleepSeconds)
	require.Equal(t, "slow", statuses[1].Name)
	require.Equal(t, registry.DefaultStopSleepSeconds, statuses[1].StopSleepSeconds)
}

func TestValidate_DetectsUnusedConfiguration(t *testing.T) {
	r, err := registry.New(registry.DefaultSettings(), map[string]registry.Override{
		"my-consumer-xxx": {StopSleepSeconds: intPtr(3)},
		"zzz":             {},
	}, loggers(), &sessionRecorder{}, &fakeSleeper{})
	require.NoError(t, err)

	_, err = r.Register(context.Background(), "my_consumer", &fakeDequeuer{})
	require.NoError(t, err)

	err = r.Validate()
	var unused *registry.UnusedConsumerConfigError
	require.True(t, errors.As(err, &unused), "want UnusedConsumerConfigError, got %v", err)
	require.Equal(t, []string{"my_consumer_xxx", "zzz"}, unused.Names)
	require.Contains(t, err.Error(), "my_consumer_xxx, zzz")
}

func TestNew_DuplicateOverrideAfterNormalization(t *testing.T) {
	_, err := registry.New(registry.DefaultSettings(), map[string]registry.Override{
		"my-consumer": {},
		"my_consumer": {},
	}, loggers(), &sessionRecorder{}, &fakeSleeper{})
	require.ErrorIs(t, err, registry.ErrDuplicateOverride)
}

func TestRegister_Errors(t *testing.T) {
	r, err := registry.New(registry.DefaultSettings(), map[string]registry.Override{
		"bad_logger":  {LoggerID: strPtr("nope")},
		"bad_session": {SessionID: strPtr("broken")},
	}, loggers(), &sessionRecorder{}, &fakeSleeper{})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = r.Register(ctx, "orders", &fakeDequeuer{})
	require.NoError(t, err)

	_, err = r.Register(ctx, "ORDERS", &fakeDequeuer{})
	require.ErrorIs(t, err, registry.ErrDuplicateConsumer)

	_, err = r.Register(ctx, "   ", &fakeDequeuer{})
	require.ErrorIs(t, err, registry.ErrEmptyName)

	_, err = r.Register(ctx, "bad-logger", &fakeDequeuer{})
	require.ErrorIs(t, err, registry.ErrUnknownLogger)

	_, err = r.Register(ctx, "bad-session", &fakeDequeuer{})
	require.ErrorIs(t, err, registry.ErrUnknownSession)
}

func TestCheckOverrides(t *testing.T) {
	overrides := map[string]registry.Override{"My-Consumer": {}}

	require.NoError(t, registry.CheckOverrides([]string{"my_consumer", "other"}, overrides))

	err := registry.CheckOverrides([]string{"other"}, overrides)
	var unused *registry.UnusedConsumerConfigError
	require.ErrorAs(t, err, &unused)
	require.Equal(t, []string{"my_consumer"}, unused.Names)
}

func TestProviders(t *testing.T) {
	l, err := loggers().Logger(registry.NoneID)
	require.NoError(t, err)
	require.IsType(t, handler.NopLogger{}, l)

	_, err = loggers().Logger("missing")
	require.ErrorIs(t, err, registry.ErrUnknownLogger)

	s, err := registry.NopSessions{}.Session(context.Background(), registry.NoneID)
	require.NoError(t, err)
	require.True(t, s.IsUsable(context.Background()))

	_, err = registry.NopSessions{}.Session(context.Background(), "default")
	require.ErrorIs(t, err, registry.ErrUnknownSession)
}
