package game

import (
	"errors"
	"fmt"
)

// Target is the sum a player must reach exactly to win.
const Target = 31

// Primes are the only values a player may add on a move.
var Primes = [...]int{2, 3, 5, 7, 11}

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game finished")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrIllegalPrime = fmt.Errorf("invalid prime, use one of %v", Primes)
	ErrSumOverflow  = fmt.Errorf("cannot exceed %d", Target)
)

// Win reasons reported with a terminal result.
const (
	ReasonTarget       = "target"
	ReasonTrap         = "trap"
	ReasonOpponentLeft = "opponent_left"
)

// State is a point-in-time copy of one room's game.
type State struct {
	RoomID  string    `json:"room_id"`
	Sum     int       `json:"sum"`
	Players [2]string `json:"players"`
	Turn    string    `json:"turn"`
	Winner  string    `json:"winner,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Moves   int       `json:"moves"`
}

// Finished reports whether a winner has been recorded.
func (s State) Finished() bool {
	return s.Winner != ""
}

// Result is the outcome of an accepted move.
type Result struct {
	State
	Terminal bool
}

// IsPrime reports whether p is one of the playable primes.
func IsPrime(p int) bool {
	for _, q := range Primes {
		if p == q {
			return true
		}
	}
	return false
}

// LegalMoves returns the primes that can still be added to sum without
// passing Target, in ascending order.
func LegalMoves(sum int) []int {
	moves := make([]int, 0, len(Primes))
	for _, p := range Primes {
		if sum+p <= Target {
			moves = append(moves, p)
		}
	}
	return moves
}

func (s *State) other(username string) string {
	if username == s.Players[0] {
		return s.Players[1]
	}
	return s.Players[0]
}

func (s *State) isPlayer(username string) bool {
	return username != "" && (username == s.Players[0] || username == s.Players[1])
}
