//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeMessage — мини-генератор валидного сообщения для консьюмера.
func MakeMessage(consumer string, opts ...func(*domain.Message)) domain.Message {
	m := domain.Message{
		ID:         uuid.NewString(),
		Consumer:   consumer,
		Key:        "key-" + UniqSuffix(),
		Payload:    []byte(`{"event":"created","ref":"` + UniqSuffix() + `"}`),
		Headers:    map[string]string{"source": "itest"},
		ReceivedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, fn := range opts {
		fn(&m)
	}
	return m
}

// WithPayload — если нужно переопределить тело в тесте.
func WithPayload(p string) func(*domain.Message) {
	return func(m *domain.Message) { m.Payload = []byte(p) }
}

func WithID(id string) func(*domain.Message) {
	return func(m *domain.Message) { m.ID = id }
}
