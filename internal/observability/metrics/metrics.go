// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ai_voice_guard"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Request metrics
	AnalysesTotal   *prometheus.CounterVec
	AnalysisLatency prometheus.Histogram
	PayloadBytes    prometheus.Histogram

	// STT metrics
	STTLatency *prometheus.HistogramVec
	STTErrors  *prometheus.CounterVec

	// Verdict metrics
	VerdictsTotal  *prometheus.CounterVec
	AIScore        prometheus.Histogram
	ScamScore      prometheus.Histogram
	ArtifactsTotal *prometheus.CounterVec
	RiskMatches    *prometheus.CounterVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// gRPC metrics
	GRPCRequests *prometheus.CounterVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of analyze-voice requests by outcome",
		}, []string{"outcome"}),
		AnalysisLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analyze-voice latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 90},
		}),
		PayloadBytes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audio_payload_bytes",
			Help:      "Decoded audio payload size in bytes",
			Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 10),
		}),

		STTLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stt_latency_seconds",
			Help:      "Speech-to-text call latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"provider"}),
		STTErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stt_errors_total",
			Help:      "Total number of STT errors",
		}, []string{"provider", "error_type"}),

		VerdictsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Total number of verdicts by voice type and call classification",
		}, []string{"voice_type", "call_classification"}),
		AIScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_score",
			Help:      "Distribution of accumulated AI voice scores",
			Buckets:   []float64{-30, -10, 0, 10, 20, 25, 30, 40, 50, 60, 75},
		}),
		ScamScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scam_score",
			Help:      "Distribution of accumulated scam keyword scores",
			Buckets:   []float64{0, 15, 30, 45, 60, 90, 120, 180},
		}),
		ArtifactsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_artifacts_total",
			Help:      "Total number of synthetic voice artifacts detected",
		}, []string{"artifact"}),
		RiskMatches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_keyword_matches_total",
			Help:      "Total number of risk keyword matches by category",
		}, []string{"category"}),

		KafkaPublishTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),

		GRPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Total number of unary gRPC requests",
		}, []string{"method", "code"}),
	}
}

// RecordAnalysis records the outcome and latency of one request.
func (m *Metrics) RecordAnalysis(outcome string, durationSeconds float64) {
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalysisLatency.Observe(durationSeconds)
}

// RecordPayload records the decoded audio size.
func (m *Metrics) RecordPayload(bytes int) {
	m.PayloadBytes.Observe(float64(bytes))
}

// RecordSTT records a transcription call.
func (m *Metrics) RecordSTT(provider string, latencySeconds float64) {
	m.STTLatency.WithLabelValues(provider).Observe(latencySeconds)
}

// RecordSTTError records an STT error.
func (m *Metrics) RecordSTTError(provider, errorType string) {
	m.STTErrors.WithLabelValues(provider, errorType).Inc()
}

// RecordVerdict records classification results and the signals behind them.
func (m *Metrics) RecordVerdict(voiceType, callClassification string, aiScore, scamScore float64, artifacts, riskIndicators []string) {
	if callClassification == "" {
		callClassification = "none"
	}
	m.VerdictsTotal.WithLabelValues(voiceType, callClassification).Inc()
	m.AIScore.Observe(aiScore)
	m.ScamScore.Observe(scamScore)
	for _, a := range artifacts {
		m.ArtifactsTotal.WithLabelValues(a).Inc()
	}
	for _, r := range riskIndicators {
		category, _, _ := strings.Cut(r, ":")
		m.RiskMatches.WithLabelValues(category).Inc()
	}
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}

// RecordGRPC records a unary gRPC call.
func (m *Metrics) RecordGRPC(method, code string) {
	m.GRPCRequests.WithLabelValues(method, code).Inc()
}
