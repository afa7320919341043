package ws

import (
	"errors"

	"prime31/internal/account"
	"prime31/internal/game"
	"prime31/internal/room"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	connectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "prime31_ws_connections_active",
			Help: "Currently open relay connections",
		},
	)
	connectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prime31_ws_connections_total",
			Help: "Relay connections accepted since start",
		},
	)
	intentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prime31_ws_intents_total",
			Help: "Client intents received, by type",
		},
		[]string{"type"},
	)
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prime31_ws_errors_total",
			Help: "Error frames sent to clients, by kind",
		},
		[]string{"kind"},
	)
	sendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prime31_ws_send_failures_total",
			Help: "Frames dropped because the session queue was full or closed",
		},
	)
	gamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prime31_games_started_total",
			Help: "Games started or restarted",
		},
	)
	gamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prime31_games_finished_total",
			Help: "Games finished, by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(connectionsActive, connectionsTotal, intentsTotal, errorsTotal,
		sendFailures, gamesStarted, gamesFinished)
}

// errorKind labels err for errorsTotal.
func errorKind(err error) string {
	switch {
	case errors.Is(err, account.ErrUnauthorized), errors.Is(err, account.ErrInvalid):
		return "auth_failure"
	case errors.Is(err, room.ErrNotFound):
		return "room_not_found"
	case errors.Is(err, room.ErrRoomFull):
		return "room_full"
	case errors.Is(err, room.ErrDuplicateJoin):
		return "duplicate_join"
	case errors.Is(err, room.ErrExists):
		return "room_exists"
	case errors.Is(err, game.ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, game.ErrGameOver):
		return "game_over"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrIllegalPrime):
		return "illegal_prime"
	case errors.Is(err, game.ErrSumOverflow):
		return "sum_overflow"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrUnknownType):
		return "unknown_type"
	default:
		return "other"
	}
}
