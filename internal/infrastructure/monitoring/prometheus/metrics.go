package prometheus

import "time"

// AppMetrics holds every metric the service emits, registered once at startup.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Query pipeline
	QueriesTotal      CounterVec
	QueryDuration     HistogramVec
	RefusalsTotal     CounterVec
	CitationsReturned HistogramVec
	EvidenceCoverage  HistogramVec
	ConfidenceScore   HistogramVec

	// Model backend
	ModelRequestsTotal   CounterVec
	ModelRequestDuration HistogramVec

	// Clause pipeline
	ClauseRequestsTotal CounterVec
	ClauseDuration      HistogramVec

	// Session memory
	SessionTurnsRecorded CounterVec
	SessionStoreErrors   CounterVec
}

// NewAppMetrics registers all application metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	latencyBuckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}
	ratioBuckets := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}

	return &AppMetrics{
		HTTPRequestsTotal: collector.RegisterCounter(
			"http_requests_total",
			"Total HTTP requests by method, path and status code.",
			"method", "path", "status",
		),
		HTTPRequestDuration: collector.RegisterHistogram(
			"http_request_duration_seconds",
			"HTTP request latency by method and path.",
			latencyBuckets,
			"method", "path",
		),
		HTTPActiveRequests: collector.RegisterGauge(
			"http_active_requests",
			"In-flight HTTP requests.",
			"method",
		),

		QueriesTotal: collector.RegisterCounter(
			"queries_total",
			"Answered queries by result status and classified domain.",
			"status", "domain",
		),
		QueryDuration: collector.RegisterHistogram(
			"query_duration_seconds",
			"End to end query pipeline latency.",
			latencyBuckets,
		),
		RefusalsTotal: collector.RegisterCounter(
			"refusals_total",
			"Refused queries by refusal domain.",
			"domain",
		),
		CitationsReturned: collector.RegisterHistogram(
			"citations_returned",
			"Number of citations attached to an answer.",
			[]float64{0, 1, 2, 3, 4, 5, 6},
		),
		EvidenceCoverage: collector.RegisterHistogram(
			"evidence_coverage",
			"Fraction of answer sentences grounded in cited sources.",
			ratioBuckets,
		),
		ConfidenceScore: collector.RegisterHistogram(
			"confidence_score",
			"Composite answer confidence.",
			ratioBuckets,
		),

		ModelRequestsTotal: collector.RegisterCounter(
			"model_requests_total",
			"Language model calls by operation and outcome.",
			"operation", "outcome",
		),
		ModelRequestDuration: collector.RegisterHistogram(
			"model_request_duration_seconds",
			"Language model call latency by operation.",
			latencyBuckets,
			"operation",
		),

		ClauseRequestsTotal: collector.RegisterCounter(
			"clause_requests_total",
			"Clause pipeline runs by outcome.",
			"outcome",
		),
		ClauseDuration: collector.RegisterHistogram(
			"clause_duration_seconds",
			"Clause pipeline latency.",
			latencyBuckets,
		),

		SessionTurnsRecorded: collector.RegisterCounter(
			"session_turns_recorded_total",
			"Conversation turns persisted to session memory.",
			"backend",
		),
		SessionStoreErrors: collector.RegisterCounter(
			"session_store_errors_total",
			"Session store failures by operation.",
			"operation",
		),
	}
}

// ObserveModelRequest records one model backend call.  It satisfies the
// textgen observer contract.
func (m *AppMetrics) ObserveModelRequest(operation, outcome string, elapsed time.Duration) {
	m.ModelRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.ModelRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SessionTurnRecorded counts one turn persisted by the named backend.
func (m *AppMetrics) SessionTurnRecorded(backend string) {
	m.SessionTurnsRecorded.WithLabelValues(backend).Inc()
}

// SessionStoreError counts one session store failure by operation.
func (m *AppMetrics) SessionStoreError(operation string) {
	m.SessionStoreErrors.WithLabelValues(operation).Inc()
}
