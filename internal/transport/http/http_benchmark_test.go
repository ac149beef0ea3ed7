//go:build !integration

package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
)

// --- Бенчмарки ---

// healthz дёргается балансировщиком постоянно — сравниваем LEAN vs FULL пайплайн
func BenchmarkHTTP_Healthz(b *testing.B) {
	h := NewHandler(statusStub{list: makeStatuses(8)}, nil, nopLogger{}, 2*time.Second)

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServeGET(b, lean, "/healthz")
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServeGET(b, full, "/healthz")
	})
}

// Страница журнала: 10/50/100 — рост аллокаций на маршалинге payload
func BenchmarkHTTP_ListMessages(b *testing.B) {
	for _, n := range []int{10, 50, 100} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			list := make([]*domain.Message, 0, n)
			for i := 0; i < n; i++ {
				list = append(list, &domain.Message{
					ID:         "m-" + strconv.Itoa(i),
					Consumer:   "bench",
					Payload:    []byte(`{"event":"created","n":` + strconv.Itoa(i) + `}`),
					Headers:    map[string]string{"source": "bench"},
					ReceivedAt: time.Unix(int64(i), 0).UTC(),
				})
			}
			h := NewHandler(statusStub{}, journalStub{list: list}, nopLogger{}, 2*time.Second)

			benchServeGET(b, makeLeanRouter(h), "/consumers/bench/messages?limit="+strconv.Itoa(n))
		})
	}
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}
func (nopLogger) Errorw(context.Context, string, ...any) {}

// --- Стабы ---

type statusStub struct{ list []domain.ConsumerStatus }

func (s statusStub) ConsumerStatuses() []domain.ConsumerStatus { return s.list }

// заранее подготовленная выборка (без аллокаций на каждом вызове)
type journalStub struct{ list []*domain.Message }

func (s journalStub) GetMessage(context.Context, string, string) (*domain.Message, error) {
	return s.list[0], nil
}

func (s journalStub) MessagesByConsumer(context.Context, string, int, int) ([]*domain.Message, error) {
	return s.list, nil
}

// --- функции-помощники ---

func makeStatuses(n int) []domain.ConsumerStatus {
	out := make([]domain.ConsumerStatus, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.ConsumerStatus{Name: "consumer_" + strconv.Itoa(i), StopSleepSeconds: 1, ClearSession: true})
	}
	return out
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger — получаем меньшую аллокацию
	r.GET("/healthz", h.healthz)
	r.GET("/consumers/:name/messages", h.listMessages)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, "")
}

func benchServeGET(b *testing.B, r *gin.Engine, path string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			// вычитываем тело
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
