package game

import (
	"sync"

	"prime31/internal/logger"
)

// PrimeGame holds the authoritative state of one room's game. All methods
// are safe for concurrent use; each accepted move is applied atomically.
type PrimeGame struct {
	mu    sync.Mutex
	state State
}

func NewPrimeGame(roomID string, players [2]string) *PrimeGame {
	return &PrimeGame{
		state: State{
			RoomID:  roomID,
			Players: players,
			Turn:    players[0],
		},
	}
}

// Move validates and applies username adding prime to the running sum.
// A rejected move leaves the state untouched.
func (g *PrimeGame) Move(username string, prime int) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.state
	switch {
	case s.Finished():
		return Result{}, ErrGameOver
	case username != s.Turn:
		return Result{}, ErrNotYourTurn
	case !IsPrime(prime):
		return Result{}, ErrIllegalPrime
	case s.Sum+prime > Target:
		return Result{}, ErrSumOverflow
	}

	s.Sum += prime
	s.Moves++

	if s.Sum == Target {
		s.Winner = username
		s.Reason = ReasonTarget
		logger.Debug("game won by target", "room", s.RoomID, "winner", username)
		return Result{State: *s, Terminal: true}, nil
	}

	// The opponent moves next; if nothing fits they are trapped and the
	// mover is credited with the win now.
	if len(LegalMoves(s.Sum)) == 0 {
		s.Winner = username
		s.Reason = ReasonTrap
		logger.Debug("game won by trap", "room", s.RoomID, "winner", username, "sum", s.Sum)
		return Result{State: *s, Terminal: true}, nil
	}

	s.Turn = s.other(username)
	logger.Debug("move applied", "room", s.RoomID, "prime", prime, "sum", s.Sum, "turn", s.Turn)
	return Result{State: *s}, nil
}

// Restart resets the sum, turn and winner and keeps the player pair.
func (g *PrimeGame) Restart() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = State{
		RoomID:  g.state.RoomID,
		Players: g.state.Players,
		Turn:    g.state.Players[0],
	}
	return g.state
}

// Forfeit declares the opponent of leaver the winner. It does nothing and
// returns false when the game is already over or leaver is not playing.
func (g *PrimeGame) Forfeit(leaver string) (State, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.state
	if s.Finished() || !s.isPlayer(leaver) {
		return *s, false
	}
	s.Winner = s.other(leaver)
	s.Reason = ReasonOpponentLeft
	return *s, true
}

func (g *PrimeGame) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
