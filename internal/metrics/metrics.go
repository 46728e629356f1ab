package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every Mudabbir collector. It is separate from the default
// registry so tests can read values without global state from other packages.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	fastpathOutcomes = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mudabbir_fastpath_outcomes_total",
			Help: "Fast-path turns by outcome (executed, failed, unsupported, confirm_prompt, confirmed, canceled, reprompt, fallthrough).",
		},
		[]string{"outcome"},
	)

	intentMatches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mudabbir_intent_matches_total",
			Help: "Resolved intents by capability id.",
		},
		[]string{"capability"},
	)

	backendRuns = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mudabbir_backend_runs_total",
			Help: "Agent backend runs by backend and outcome.",
		},
		[]string{"backend", "outcome"},
	)

	firstChunkLatency = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mudabbir_backend_first_chunk_seconds",
			Help:    "Time from dispatch to the first streamed chunk.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 90},
		},
		[]string{"backend"},
	)

	inflightSessions = factory.NewGauge(prometheus.GaugeOpts{
		Name: "mudabbir_inflight_sessions",
		Help: "Sessions currently holding a concurrency slot.",
	})
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
}

func RecordFastpath(outcome string) { fastpathOutcomes.WithLabelValues(outcome).Inc() }

func RecordIntent(capability string) { intentMatches.WithLabelValues(capability).Inc() }

func RecordBackendRun(backend, outcome string) {
	backendRuns.WithLabelValues(backend, outcome).Inc()
}

func ObserveFirstChunk(backend string, d time.Duration) {
	firstChunkLatency.WithLabelValues(backend).Observe(d.Seconds())
}

func SessionStarted()  { inflightSessions.Inc() }
func SessionFinished() { inflightSessions.Dec() }

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
