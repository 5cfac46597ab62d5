package service

import "github.com/prometheus/client_golang/prometheus"

var (
	roomsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mancala_rooms_created_total",
		Help: "Total rooms created",
	})
	roomsJoined = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mancala_rooms_joined_total",
		Help: "Total successful room joins",
	})
	movesApplied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mancala_moves_applied_total",
		Help: "Total legal moves applied to game state",
	})
	gamesFinished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mancala_games_finished_total",
		Help: "Total games played to completion",
	})
)

func init() {
	prometheus.MustRegister(roomsCreated)
	prometheus.MustRegister(roomsJoined)
	prometheus.MustRegister(movesApplied)
	prometheus.MustRegister(gamesFinished)
}
