// Package metrics holds the Prometheus instruments for the bootstrap run.
// Registration is explicit (no init()) on a caller-provided registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Set bundles all instruments. A nil *Set is valid and records nothing,
// so instrumented code does not need to guard for the metrics-off case.
type Set struct {
	probeAttempts prometheus.Counter
	requests      *prometheus.CounterVec

	collectionsCreated  prometheus.Counter
	collectionsExisting prometheus.Counter
	collectionsFailed   prometheus.Counter
	indexFailures       *prometheus.CounterVec
}

// New creates the instrument set and registers it on reg.
func New(reg prometheus.Registerer) *Set {
	s := &Set{
		probeAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qdrant_init",
			Name:      "probe_attempts_total",
			Help:      "Liveness probe attempts against the service root",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qdrant_init",
			Name:      "api_requests_total",
			Help:      "Management API requests by operation and outcome",
		}, []string{"operation", "outcome"}),

		collectionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qdrant_init",
			Name:      "collections_created_total",
			Help:      "Collections created during this run",
		}),
		collectionsExisting: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qdrant_init",
			Name:      "collections_existing_total",
			Help:      "Collections skipped because they already existed",
		}),
		collectionsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qdrant_init",
			Name:      "collections_failed_total",
			Help:      "Collections whose creation failed",
		}),
		indexFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qdrant_init",
			Name:      "index_failures_total",
			Help:      "Payload field index requests that failed",
		}, []string{"collection"}),
	}

	reg.MustRegister(
		s.probeAttempts, s.requests,
		s.collectionsCreated, s.collectionsExisting, s.collectionsFailed,
		s.indexFailures,
	)
	return s
}

// IncProbeAttempt records one liveness probe.
func (s *Set) IncProbeAttempt() {
	if s == nil {
		return
	}
	s.probeAttempts.Inc()
}

// IncRequest records one management API request outcome.
func (s *Set) IncRequest(operation, outcome string) {
	if s == nil {
		return
	}
	s.requests.WithLabelValues(operation, outcome).Inc()
}

// IncCreated records a freshly created collection.
func (s *Set) IncCreated() {
	if s == nil {
		return
	}
	s.collectionsCreated.Inc()
}

// IncExisting records an already-present collection.
func (s *Set) IncExisting() {
	if s == nil {
		return
	}
	s.collectionsExisting.Inc()
}

// IncFailed records a failed collection creation.
func (s *Set) IncFailed() {
	if s == nil {
		return
	}
	s.collectionsFailed.Inc()
}

// IncIndexFailure records a failed payload index request.
func (s *Set) IncIndexFailure(collection string) {
	if s == nil {
		return
	}
	s.indexFailures.WithLabelValues(collection).Inc()
}
