package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lennartvogt/treedom/pkg/observability"
)

// Metrics exposes solver and cache activity as Prometheus collectors.
// It implements the observability hook interfaces, so one instance
// serves as both solver and cache hooks.
type Metrics struct {
	solves        *prometheus.CounterVec
	solveDuration prometheus.Histogram
	cacheRequests *prometheus.CounterVec
	bagEntries    prometheus.Histogram
}

var (
	_ observability.SolverHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
)

// NewMetrics creates and registers the collectors. A nil registerer
// uses the Prometheus default registry, which is what the /metrics
// endpoint serves.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treedom_solves_total",
				Help: "Total solver runs by outcome.",
			},
			[]string{"status"},
		),
		solveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treedom_solve_duration_seconds",
				Help:    "Wall time of solver runs.",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treedom_cache_requests_total",
				Help: "Answer cache operations by result.",
			},
			[]string{"result"},
		),
		bagEntries: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treedom_bag_entries",
				Help:    "Table entries per solved bag.",
				Buckets: prometheus.ExponentialBuckets(1, 3, 12),
			},
		),
	}
	reg.MustRegister(m.solves, m.solveDuration, m.cacheRequests, m.bagEntries)
	return m
}

// Register installs the metrics as the process-wide solver and cache
// hooks.
func (m *Metrics) Register() {
	observability.SetSolverHooks(m)
	observability.SetCacheHooks(m)
}

func (m *Metrics) OnSolveStart(context.Context, int, int) {}

func (m *Metrics) OnBagSolved(_ context.Context, _ int, _ string, entries int, _ time.Duration) {
	m.bagEntries.Observe(float64(entries))
}

func (m *Metrics) OnSolveComplete(_ context.Context, _ int, feasible bool, duration time.Duration, err error) {
	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case !feasible:
		status = "infeasible"
	}
	m.solves.WithLabelValues(status).Inc()
	m.solveDuration.Observe(duration.Seconds())
}

func (m *Metrics) OnCacheHit(context.Context, string) {
	m.cacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) OnCacheMiss(context.Context, string) {
	m.cacheRequests.WithLabelValues("miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, _ string, _ int) {
	m.cacheRequests.WithLabelValues("set").Inc()
}
