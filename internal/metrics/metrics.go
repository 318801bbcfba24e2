package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CreationsTotal counts instance creations correlated from receipts
	CreationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenizer_creations_total",
			Help: "Total number of platform instances created",
		},
		[]string{"kind"},
	)

	// TransactionsSent counts transactions submitted to the chain
	TransactionsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenizer_transactions_sent_total",
			Help: "Total number of transactions sent",
		},
		[]string{"operation", "status"},
	)

	// ScanQueriesTotal counts per-instance event queries during history scans
	ScanQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenizer_scan_queries_total",
			Help: "Total number of instance event queries",
		},
		[]string{"event"},
	)

	// ScanFailuresTotal counts instance event queries that failed
	ScanFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenizer_scan_failures_total",
			Help: "Total number of failed instance event queries",
		},
		[]string{"event"},
	)

	// HistoryDuration tracks wallet history reconstruction time
	HistoryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tokenizer_history_duration_seconds",
			Help:    "Wallet history reconstruction duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	// DiscoveredInstances tracks instances known per factory
	DiscoveredInstances = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tokenizer_discovered_instances",
			Help: "Number of instances discovered per factory",
		},
		[]string{"kind"},
	)
)
