package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	rlRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mancala_rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	rlBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mancala_rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(rlRequests, rlBlocked)
}
