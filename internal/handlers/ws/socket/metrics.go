package socket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveSessions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "realtime_websocket_sessions",
			Help: "Open websocket streams",
		},
		[]string{"stream"},
	)

	MessagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_websocket_messages_sent_total",
			Help: "Messages written to websocket streams",
		},
		[]string{"stream", "type"},
	)
)
