// Package metrics exposes the planner and backend counters scraped from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "noodle"

type Metrics struct {
	StagedOrders  prometheus.Gauge
	Syncs         *prometheus.CounterVec
	Loads         *prometheus.CounterVec
	Admissions    *prometheus.CounterVec
	BackendWrites *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StagedOrders: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "staged_orders",
			Help:      "Orders admitted locally and not yet written to the remote store.",
		}),
		Syncs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_total",
			Help:      "Bulk writes to the remote store by action and result.",
		}, []string{"action", "result"}),
		Loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_total",
			Help:      "Remote snapshot fetches by result.",
		}, []string{"result"}),
		Admissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admission_total",
			Help:      "Order batches submitted by result.",
		}, []string{"result"}),
		BackendWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_write_total",
			Help:      "Write envelopes applied by the reference backend.",
		}, []string{"action", "result"}),
	}
}

func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
