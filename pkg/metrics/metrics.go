package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consumer_messages_consumed_total",
			Help: "Number of messages fetched from the broker",
		},
		[]string{"consumer"},
	)
	MessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consumer_messages_processed_total",
			Help: "Number of messages processed, by outcome",
		},
		[]string{"consumer", "outcome"}, // ack|reject|reject_requeue|single_nack_requeue
	)
	CallbackFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consumer_callback_failures_total",
			Help: "Number of message callbacks that failed with an error or panic",
		},
		[]string{"consumer"},
	)
	ConsumerStops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consumer_stops_total",
			Help: "Number of forced consumer stops",
		},
		[]string{"consumer", "reason"},
	)
)

var (
	DedupCacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dedup_cache_operations_total",
			Help: "De-duplication cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	DedupCacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dedup_cache_size",
			Help: "Number of message ids currently remembered",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует коллекторы в глобальном реестре.
// Повторный вызов безопасен; уже зарегистрированные коллекторы пропускаются.
func MustRegister() {
	registerOnce.Do(func() {
		for _, c := range []prometheus.Collector{
			MessagesConsumed, MessagesProcessed, CallbackFailures, ConsumerStops,
			DedupCacheOps, DedupCacheSize,
		} {
			if err := prometheus.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errors.As(err, &are) {
					panic(err)
				}
			}
		}
	})
}
