package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/orchestration"
)

const namespace = "paramsweep"

// SweepMetrics records harness events as Prometheus series. Each instance
// owns its registry so that several sweeps (and tests) never collide on the
// global default registerer.
type SweepMetrics struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	combinations  prometheus.Gauge
	evaluated     prometheus.Counter
	failures      prometheus.Counter
	chunkDuration prometheus.Histogram
	activeWorkers prometheus.Gauge
	runDuration   prometheus.Gauge
}

var _ orchestration.Observer = (*SweepMetrics)(nil)

// NewSweepMetrics creates and registers the sweep collectors along with the
// Go runtime and process collectors.
func NewSweepMetrics() *SweepMetrics {
	m := &SweepMetrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Sweeps finished, by outcome.",
		}, []string{"outcome"}),
		combinations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "combinations",
			Help:      "Size of the parameter space of the current sweep.",
		}),
		evaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "combinations_evaluated_total",
			Help:      "Combinations evaluated successfully.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluation_failures_total",
			Help:      "Sweeps aborted by a failing evaluation.",
		}),
		chunkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_duration_seconds",
			Help:      "Time taken to evaluate one chunk.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workers",
			Help:      "Workers currently evaluating a chunk.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the most recent sweep.",
		}),
	}
	m.registry.MustRegister(
		m.runs, m.combinations, m.evaluated, m.failures,
		m.chunkDuration, m.activeWorkers, m.runDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the sweep collectors.
func (m *SweepMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *SweepMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *SweepMetrics) RunStarted(plan orchestration.Plan) {
	m.combinations.Set(float64(plan.Combinations))
	m.activeWorkers.Set(0)
}

func (m *SweepMetrics) WorkerActive(_ int, active bool) {
	if active {
		m.activeWorkers.Inc()
	} else {
		m.activeWorkers.Dec()
	}
}

func (m *SweepMetrics) ChunkDone(_ int, items int, elapsed time.Duration) {
	m.evaluated.Add(float64(items))
	m.chunkDuration.Observe(elapsed.Seconds())
}

func (m *SweepMetrics) RunFinished(elapsed time.Duration, err error) {
	m.runDuration.Set(elapsed.Seconds())
	m.runs.WithLabelValues(outcome(err)).Inc()
	var evalErr apperrors.EvaluationError
	if errors.As(err, &evalErr) {
		m.failures.Inc()
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsContextError(err):
		return "canceled"
	default:
		return "failure"
	}
}
