// Package metrics holds the Prometheus collectors for the matching engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "hirematch"

// Collector groups every metric exported by the service
type Collector struct {
	registry *prometheus.Registry

	CandidateMatches     *prometheus.HistogramVec
	NotificationsSent    prometheus.Counter
	NotificationsFailed  prometheus.Counter
	NotificationsSkipped prometheus.Counter
	Transitions          *prometheus.CounterVec
	Recommendations      prometheus.Histogram
	ProximityQueries     *prometheus.CounterVec
}

var (
	defaultCollector *Collector
	defaultOnce      sync.Once
)

// Default returns the process-wide collector
func Default() *Collector {
	defaultOnce.Do(func() {
		defaultCollector = New()
	})
	return defaultCollector
}

// New creates a collector on a fresh registry
func New() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		CandidateMatches: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "candidate_matches",
				Help:      "Number of candidates matched per saved search evaluation",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
			[]string{"mode"},
		),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Saved search notifications delivered and committed",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Saved search notifications whose delivery failed",
		}),
		NotificationsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dry_run_total",
			Help:      "Saved search notifications reported by dry runs",
		}),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "application_transitions_total",
				Help:      "Application status transition attempts by outcome",
			},
			[]string{"to", "result"},
		),
		Recommendations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendations_returned",
			Help:      "Number of jobs returned per recommendation request",
			Buckets:   []float64{0, 1, 2, 5, 10},
		}),
		ProximityQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "proximity_queries_total",
				Help:      "Job proximity queries by whether the radius filter applied",
			},
			[]string{"filtered"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.CandidateMatches,
		c.NotificationsSent,
		c.NotificationsFailed,
		c.NotificationsSkipped,
		c.Transitions,
		c.Recommendations,
		c.ProximityQueries,
	)
	return c
}

// Registry exposes the registry for the /metrics handler
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
