// Package metrics provides Prometheus instrumentation for the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "connlb"

// Metrics holds the bot's Prometheus collectors
type Metrics struct {
	SubmissionsRecorded  prometheus.Counter
	SubmissionsDuplicate prometheus.Counter
	BroadcastsSent       *prometheus.CounterVec
	BroadcastsSkipped    *prometheus.CounterVec
	DeliveryFailures     prometheus.Counter
	SchedulerTicks       prometheus.Counter
}

// New registers the bot's metrics against reg and returns them
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SubmissionsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_recorded_total",
			Help:      "Puzzle submissions accepted and stored.",
		}),
		SubmissionsDuplicate: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_duplicate_total",
			Help:      "Submissions rejected because the user already scored the puzzle.",
		}),
		BroadcastsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_sent_total",
			Help:      "Scheduled leaderboard broadcasts delivered, by kind.",
		}, []string{"kind"}),
		BroadcastsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_skipped_total",
			Help:      "Communities skipped during a broadcast sweep, by reason.",
		}, []string{"reason"}),
		DeliveryFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_failures_total",
			Help:      "Messages the delivery gate gave up on.",
		}),
		SchedulerTicks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_ticks_total",
			Help:      "Scheduler ticks processed.",
		}),
	}
}

// NewUnregistered returns metrics backed by a private registry, for tests
// and callers that don't need scraping
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
