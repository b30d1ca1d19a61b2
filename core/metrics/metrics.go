package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names.
const (
	MetricCyclesTotal          = "catalog_mirror_cycles_total"
	MetricCycleDurationSeconds = "catalog_mirror_cycle_duration_seconds"
	MetricLastCycleTimestamp   = "catalog_mirror_last_cycle_timestamp_seconds"
	MetricRowsFetched          = "catalog_mirror_rows_fetched"
	MetricMutationsTotal       = "catalog_mirror_mutations_total"
	MetricSkipsTotal           = "catalog_mirror_skips_total"
	MetricStepErrorsTotal      = "catalog_mirror_step_errors_total"
)

// Recorder holds the sync metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	lastCycle     prometheus.Gauge
	rows          *prometheus.GaugeVec
	mutations     *prometheus.CounterVec
	skips         *prometheus.CounterVec
	stepErrors    *prometheus.CounterVec
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricCyclesTotal,
			Help: "Sync cycles run, by outcome.",
		}, []string{"outcome"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricCycleDurationSeconds,
			Help:    "Duration of a full sync cycle.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		lastCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastCycleTimestamp,
			Help: "Unix time the last cycle finished.",
		}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: MetricRowsFetched,
			Help: "Rows fetched from the catalog in the last cycle.",
		}, []string{"entity"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricMutationsTotal,
			Help: "Mirror mutations applied, by entity and action.",
		}, []string{"entity", "action"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricSkipsTotal,
			Help: "Writes withheld because the computed value was missing.",
		}, []string{"entity"}),
		stepErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricStepErrorsTotal,
			Help: "Failed cycle steps.",
		}, []string{"step"}),
	}

	r.registry.MustRegister(r.cycles, r.cycleDuration, r.lastCycle, r.rows, r.mutations, r.skips, r.stepErrors)
	return r
}

// ObserveCycle records a finished cycle.
func (r *Recorder) ObserveCycle(d time.Duration, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "partial"
	}
	r.cycles.WithLabelValues(outcome).Inc()
	r.cycleDuration.Observe(d.Seconds())
	r.lastCycle.SetToCurrentTime()
}

// SetRows records the number of rows fetched for an entity.
func (r *Recorder) SetRows(entity string, n int) {
	r.rows.WithLabelValues(entity).Set(float64(n))
}

// AddMutations counts applied mirror mutations.
func (r *Recorder) AddMutations(entity, action string, n int) {
	if n > 0 {
		r.mutations.WithLabelValues(entity, action).Add(float64(n))
	}
}

// AddSkips counts withheld writes.
func (r *Recorder) AddSkips(entity string, n int) {
	if n > 0 {
		r.skips.WithLabelValues(entity).Add(float64(n))
	}
}

// StepFailed counts a failed cycle step.
func (r *Recorder) StepFailed(step string) {
	r.stepErrors.WithLabelValues(step).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
