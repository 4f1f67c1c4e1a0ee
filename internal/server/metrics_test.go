package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/lennartvogt/treedom/pkg/observability"
)

func TestMetricsSolveOutcomes(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics(prometheus.NewRegistry())

	m.OnSolveComplete(ctx, 2, true, 10*time.Millisecond, nil)
	m.OnSolveComplete(ctx, 3, true, 10*time.Millisecond, nil)
	m.OnSolveComplete(ctx, 0, false, time.Millisecond, nil)
	m.OnSolveComplete(ctx, 0, false, 0, errors.New("boom"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.solves.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.solves.WithLabelValues("infeasible")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.solves.WithLabelValues("error")))
}

func TestMetricsCacheResults(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics(prometheus.NewRegistry())

	m.OnCacheMiss(ctx, "answer")
	m.OnCacheSet(ctx, "answer", 128)
	m.OnCacheHit(ctx, "answer")
	m.OnCacheHit(ctx, "answer")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.cacheRequests.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheRequests.WithLabelValues("miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheRequests.WithLabelValues("set")))
}

func TestMetricsBagEntries(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.OnBagSolved(ctx, 1, "introduce", 9, time.Microsecond)
	m.OnBagSolved(ctx, 2, "forget", 3, time.Microsecond)

	families, err := reg.Gather()
	assert.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "treedom_bag_entries" {
			continue
		}
		found = true
		hist := mf.GetMetric()[0].GetHistogram()
		assert.EqualValues(t, 2, hist.GetSampleCount())
		assert.Equal(t, float64(12), hist.GetSampleSum())
	}
	assert.True(t, found, "treedom_bag_entries not gathered")
}

func TestMetricsRegister(t *testing.T) {
	t.Cleanup(observability.Reset)

	m := NewMetrics(prometheus.NewRegistry())
	m.Register()

	assert.Same(t, m, observability.Solver())
	assert.Same(t, m, observability.Cache())
}
