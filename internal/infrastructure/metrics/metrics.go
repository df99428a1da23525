package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the recognition bot
type Metrics struct {
	// Webhook metrics
	UpdatesReceived prometheus.Counter
	EnqueueErrors   prometheus.Counter

	// Processing metrics
	UpdatesProcessed *prometheus.CounterVec
	ProcessingErrors *prometheus.CounterVec
	Requeues         prometheus.Counter
	ReportFailures   prometheus.Counter

	// Recognition metrics
	RecognitionDuration prometheus.Histogram
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

// NewMetrics registers all collectors with the default registry
func NewMetrics() *Metrics {
	return &Metrics{
		UpdatesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "songid_bot_updates_received_total",
			Help: "Total number of updates accepted by the webhook",
		}),
		EnqueueErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "songid_bot_enqueue_errors_total",
			Help: "Total number of updates that could not be enqueued",
		}),

		UpdatesProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "songid_bot_updates_processed_total",
				Help: "Total number of processed updates by outcome",
			},
			[]string{"outcome"},
		),
		ProcessingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "songid_bot_processing_errors_total",
				Help: "Total number of processing errors by kind",
			},
			[]string{"error_type"},
		),
		Requeues: promauto.NewCounter(prometheus.CounterOpts{
			Name: "songid_bot_requeues_total",
			Help: "Total number of updates pushed back for another attempt",
		}),
		ReportFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "songid_bot_report_failures_total",
			Help: "Total number of replies that could not be delivered",
		}),

		RecognitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "songid_bot_recognition_duration_seconds",
			Help:    "Duration of recognition requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 3, 5, 10},
		}),
	}
}

// RecordUpdateReceived records an update accepted by the webhook
func (m *Metrics) RecordUpdateReceived() {
	m.UpdatesReceived.Inc()
}

// RecordEnqueueError records a failed enqueue
func (m *Metrics) RecordEnqueueError() {
	m.EnqueueErrors.Inc()
}

// RecordOutcome records the outcome of one processing pass
func (m *Metrics) RecordOutcome(outcome string) {
	m.UpdatesProcessed.WithLabelValues(outcome).Inc()
}

// RecordError records a processing error with error type
func (m *Metrics) RecordError(errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.ProcessingErrors.WithLabelValues(errorType).Inc()
}

// RecordRequeue records an update pushed back onto the queue
func (m *Metrics) RecordRequeue() {
	m.Requeues.Inc()
}

// RecordReportFailure records a reply that could not be sent
func (m *Metrics) RecordReportFailure() {
	m.ReportFailures.Inc()
}

// RecordRecognition records the duration of a recognition request
func (m *Metrics) RecordRecognition(duration float64) {
	m.RecognitionDuration.Observe(duration)
}
