package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics структура для метрик Prometheus
type Metrics struct {
	MessagesProcessed    prometheus.Counter
	CommandsProcessed    prometheus.Counter
	ErrorsTotal          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
	BookingsCreated      *prometheus.CounterVec
	BookingsCancelled    prometheus.Counter
}

// NewMetrics создает новые метрики
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_messages_processed_total",
			Help: "Total number of messages processed",
		}),

		CommandsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_commands_processed_total",
			Help: "Total number of commands processed",
		}),

		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_errors_total",
			Help: "Total number of panics recovered in update handlers",
		}),

		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "telegram_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),

		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_bot_bookings_created_total",
			Help: "Total number of bookings created",
		}, []string{"movie"}),

		BookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_bookings_cancelled_total",
			Help: "Total number of bookings cancelled",
		}),
	}
}
