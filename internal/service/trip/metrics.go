package trip

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_transitions_total",
			Help: "Total number of applied delivery status transitions",
		},
		[]string{"status"},
	)

	LedgerEntriesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trip_ledger_entries_created_total",
			Help: "Total number of rider earning entries written",
		},
	)
)
