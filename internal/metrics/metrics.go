// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	// committed store mutations by action
	Mutations *prometheus.CounterVec
	// post-commit hook failures by hook
	HookFailures *prometheus.CounterVec
	// backup step latency by step (export, snapshot, mirror)
	BackupDuration *prometheus.HistogramVec
	// backup step failures by step
	BackupFailures *prometheus.CounterVec
	// currently connected event feed clients
	FeedClients prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers every collector on reg. reg must also be a Gatherer for Handler to work.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "choferes",
			Name:      "mutations_total",
			Help:      "Committed record mutations.",
		}, []string{"action"}),
		HookFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "choferes",
			Name:      "post_commit_hook_failures_total",
			Help:      "Post-commit hooks that returned an error.",
		}, []string{"hook"}),
		BackupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "choferes",
			Name:      "backup_step_duration_seconds",
			Help:      "Duration of each backup step.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"step"}),
		BackupFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "choferes",
			Name:      "backup_step_failures_total",
			Help:      "Backup steps that failed.",
		}, []string{"step"}),
		FeedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "choferes",
			Name:      "event_feed_clients",
			Help:      "Connected event feed clients.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.Mutations,
		m.HookFailures,
		m.BackupDuration,
		m.BackupFailures,
		m.FeedClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// NewNop returns collectors on a private registry, for tests and one-shot commands.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
