package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Send metrics
var (
	MailSendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_send_total",
			Help: "Total number of send attempts by outcome",
		},
		[]string{"outcome"}, // sent, failed, timeout, invalid
	)

	MailSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mail_send_duration_seconds",
			Help:    "Duration of send operations including transport acquisition",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Transport cache metrics
var (
	TransportCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_cache_total",
			Help: "Transport cache lookups by event",
		},
		[]string{"event"}, // hit, miss, rebuild
	)
)

// Test-account provisioning metrics
var (
	TestAccountsProvisionedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "test_accounts_provisioned_total",
			Help: "Total number of ephemeral test accounts provisioned",
		},
	)
)
