package ws

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mancala_ws_connections",
		Help: "Number of active websocket connections.",
	})
	droppedFrames = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mancala_ws_dropped_frames_total",
		Help: "Outbound frames dropped because a client send buffer was full.",
	})
	movesRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mancala_moves_rejected_total",
		Help: "Moves rejected by validation or turn checks.",
	})
)

func init() {
	prometheus.MustRegister(wsConnections, droppedFrames, movesRejected)
}
