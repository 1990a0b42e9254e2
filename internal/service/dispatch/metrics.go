package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_assignments_created_total",
			Help: "Total number of pending assignments offered to riders",
		},
	)

	ClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_claims_total",
			Help: "Total number of claim attempts by result",
		},
		[]string{"result"},
	)

	RebroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_rebroadcasts_total",
			Help: "Total number of rebroadcast calls by outcome",
		},
		[]string{"status"},
	)
)
