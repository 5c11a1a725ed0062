package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the search bot
type Metrics struct {
	// Search flow metrics
	SearchesTotal  *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	ResultsPerHit  prometheus.Histogram

	// Access gate metrics
	GateDecisions    *prometheus.CounterVec
	MembershipErrors prometheus.Counter

	// Escalation metrics
	RequestsCreated     prometheus.Counter
	AdminNotifyFailures prometheus.Counter

	// Delivery metrics
	BroadcastMessages *prometheus.CounterVec
	DeliveryFailures  *prometheus.CounterVec
	PendingDeletions  prometheus.Gauge

	// Catalog metrics
	PostsIngested prometheus.Counter
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance registered on the default registry
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_bot_searches_total",
				Help: "Total number of search queries by outcome",
			},
			[]string{"outcome"},
		),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "search_bot_search_duration_seconds",
			Help:    "Duration of catalog index queries",
			Buckets: prometheus.DefBuckets,
		}),
		ResultsPerHit: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "search_bot_results_per_search",
			Help:    "Number of posts returned by successful searches",
			Buckets: []float64{1, 2, 3, 5, 8, 10, 20},
		}),
		GateDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_bot_gate_decisions_total",
				Help: "Access gate decisions by result and reason",
			},
			[]string{"result", "reason"},
		),
		MembershipErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "search_bot_membership_errors_total",
			Help: "Membership lookups that failed and fell through to allowed",
		}),
		RequestsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "search_bot_requests_created_total",
			Help: "Content requests escalated to admins",
		}),
		AdminNotifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "search_bot_admin_notify_failures_total",
			Help: "Admin notifications that could not be delivered",
		}),
		BroadcastMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_bot_broadcast_messages_total",
				Help: "Broadcast messages by delivery result",
			},
			[]string{"result"},
		),
		DeliveryFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_bot_delivery_failures_total",
				Help: "Non-fatal delivery failures by operation",
			},
			[]string{"operation"},
		),
		PendingDeletions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "search_bot_pending_deletions",
			Help: "Result messages waiting for auto deletion",
		}),
		PostsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "search_bot_posts_ingested_total",
			Help: "Channel posts added to the catalog",
		}),
	}
}

// RecordSearch records a finished search with its outcome
func (m *Metrics) RecordSearch(outcome string) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
}

// RecordIndexQuery records catalog query duration and hit count
func (m *Metrics) RecordIndexQuery(duration float64, results int) {
	m.SearchDuration.Observe(duration)
	if results > 0 {
		m.ResultsPerHit.Observe(float64(results))
	}
}

// RecordGateDecision records an access gate decision
func (m *Metrics) RecordGateDecision(allowed bool, reason string) {
	result := "allowed"
	if !allowed {
		result = "blocked"
	}
	m.GateDecisions.WithLabelValues(result, reason).Inc()
}

// RecordMembershipError records a failed membership lookup
func (m *Metrics) RecordMembershipError() {
	m.MembershipErrors.Inc()
}

// RecordRequestCreated records an escalation
func (m *Metrics) RecordRequestCreated() {
	m.RequestsCreated.Inc()
}

// RecordAdminNotifyFailure records an admin notification failure
func (m *Metrics) RecordAdminNotifyFailure() {
	m.AdminNotifyFailures.Inc()
}

// RecordBroadcast records one broadcast delivery attempt
func (m *Metrics) RecordBroadcast(success bool) {
	if success {
		m.BroadcastMessages.WithLabelValues("success").Inc()
		return
	}
	m.BroadcastMessages.WithLabelValues("failed").Inc()
}

// RecordDeliveryFailure records a swallowed delivery failure
func (m *Metrics) RecordDeliveryFailure(operation string) {
	if operation == "" {
		operation = "unknown"
	}
	m.DeliveryFailures.WithLabelValues(operation).Inc()
}

// DeletionScheduled increments the pending deletions gauge
func (m *Metrics) DeletionScheduled() {
	m.PendingDeletions.Inc()
}

// DeletionDone decrements the pending deletions gauge
func (m *Metrics) DeletionDone() {
	m.PendingDeletions.Dec()
}

// RecordPostIngested records a new catalog post
func (m *Metrics) RecordPostIngested() {
	m.PostsIngested.Inc()
}
