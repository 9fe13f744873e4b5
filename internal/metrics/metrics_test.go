package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ting-32/noodle/internal/metrics"
)

func TestMetrics_RegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.StagedOrders.Set(3)
	m.Syncs.WithLabelValues("saveOrders", metrics.Result(nil)).Inc()
	m.Syncs.WithLabelValues("saveOrders", metrics.Result(errors.New("x"))).Inc()
	m.Syncs.WithLabelValues("saveOrders", metrics.Result(errors.New("y"))).Inc()

	require.Equal(t, 3.0, testutil.ToFloat64(m.StagedOrders))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Syncs.WithLabelValues("saveOrders", "ok")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Syncs.WithLabelValues("saveOrders", "error")))
}

func TestMetrics_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	require.Panics(t, func() { metrics.New(reg) })
}
