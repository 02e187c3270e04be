package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PushDeliveries counts live-channel push attempts by outcome:
	// "delivered", "offline" or "dropped".
	PushDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityshare_push_deliveries_total",
		Help: "Total live notification push attempts by outcome",
	}, []string{"outcome"})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or its channel already closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityshare_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)
