package game

import "sync"

// Engine maps room identifiers to their games.
type Engine struct {
	mu    sync.RWMutex
	games map[string]*PrimeGame
}

func NewEngine() *Engine {
	return &Engine{games: make(map[string]*PrimeGame)}
}

// Start creates the game for roomID, replacing any previous one.
func (e *Engine) Start(roomID string, players [2]string) State {
	g := NewPrimeGame(roomID, players)

	e.mu.Lock()
	e.games[roomID] = g
	e.mu.Unlock()

	return g.Snapshot()
}

func (e *Engine) Apply(roomID, username string, prime int) (Result, error) {
	g, err := e.get(roomID)
	if err != nil {
		return Result{}, err
	}
	return g.Move(username, prime)
}

func (e *Engine) Restart(roomID string) (State, error) {
	g, err := e.get(roomID)
	if err != nil {
		return State{}, err
	}
	return g.Restart(), nil
}

// Forfeit ends roomID's game in favour of the player who did not leave.
func (e *Engine) Forfeit(roomID, leaver string) (State, bool) {
	g, err := e.get(roomID)
	if err != nil {
		return State{}, false
	}
	return g.Forfeit(leaver)
}

func (e *Engine) State(roomID string) (State, error) {
	g, err := e.get(roomID)
	if err != nil {
		return State{}, err
	}
	return g.Snapshot(), nil
}

// Len returns the number of games ever started.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.games)
}

func (e *Engine) get(roomID string) (*PrimeGame, error) {
	e.mu.RLock()
	g, ok := e.games[roomID]
	e.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}
