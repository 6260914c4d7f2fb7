// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"voice-assistant-client/internal/decode"
)

const namespace = "voice_client"

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	// Session metrics
	SessionsActive prometheus.Gauge
	QueueDepth     prometheus.Gauge

	// Event metrics
	EventsTotal *prometheus.CounterVec

	// Transcript metrics
	TranscriptsPartial prometheus.Counter
	TranscriptsFinal   prometheus.Counter

	// Data channel metrics
	ResultPushes prometheus.Counter
	DecodeErrors *prometheus.CounterVec

	// UI metrics
	ModalOpens prometheus.Counter

	// Connection metrics
	ConnectionTimeouts prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of currently active voice sessions",
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "input_queue_depth",
			Help:      "Number of inputs waiting in the coordinator queue",
		}),

		EventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_events_total",
			Help:      "Total number of session events consumed",
		}, []string{"type"}),

		TranscriptsPartial: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_partial_total",
			Help:      "Total number of partial transcript deltas received",
		}),
		TranscriptsFinal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_final_total",
			Help:      "Total number of final transcript deltas received",
		}),

		ResultPushes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_pushes_total",
			Help:      "Total number of provider result sets pushed by the agent",
		}),
		DecodeErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Total number of data messages dropped at decode",
		}, []string{"kind"}),

		ModalOpens: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "modal_opens_total",
			Help:      "Total number of times the result browser was opened by intent",
		}),

		ConnectionTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connection_timeouts_total",
			Help:      "Total number of sessions that exceeded the connection budget",
		}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordTranscriptDelta counts one transcript delta.
func (m *Metrics) RecordTranscriptDelta(final bool) {
	m.EventsTotal.WithLabelValues("transcript_delta").Inc()
	if final {
		m.TranscriptsFinal.Inc()
	} else {
		m.TranscriptsPartial.Inc()
	}
}

// RecordDecodeError counts one dropped data message by decode error kind.
func (m *Metrics) RecordDecodeError(err error) {
	kind := "unknown"
	var derr *decode.Error
	if errors.As(err, &derr) {
		kind = derr.Kind.String()
	}
	m.DecodeErrors.WithLabelValues(kind).Inc()
}

// RecordKafkaPublish records the outcome and latency of one publish.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, seconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(seconds)
}
