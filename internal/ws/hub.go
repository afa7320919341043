package ws

import (
	"context"
	"encoding/json"
	"sync"

	"prime31/internal/config"
	"prime31/internal/game"
	"prime31/internal/logger"
	"prime31/internal/room"
)

// Directory checks player credentials.
type Directory interface {
	Register(ctx context.Context, username, password string) error
	Verify(ctx context.Context, username, password string) error
}

type Options struct {
	// DisconnectPolicy is config.DisconnectStall or config.DisconnectForfeit.
	DisconnectPolicy string
}

// Hub owns the live sessions and the username -> room membership index.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Client
	members  map[string]string

	locksMu   sync.Mutex
	roomLocks map[string]*sync.Mutex

	rooms    *room.Registry
	games    *game.Engine
	accounts Directory
	policy   string
}

func NewHub(accounts Directory, rooms *room.Registry, games *game.Engine, opts Options) *Hub {
	policy := opts.DisconnectPolicy
	if policy == "" {
		policy = config.DisconnectStall
	}
	return &Hub{
		sessions:  make(map[string]*Client),
		members:   make(map[string]string),
		roomLocks: make(map[string]*sync.Mutex),
		rooms:     rooms,
		games:     games,
		accounts:  accounts,
		policy:    policy,
	}
}

// login binds username to c. It fails when another session already holds it.
func (h *Hub) login(c *Client, username string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if other, ok := h.sessions[username]; ok && other != c {
		return false
	}
	h.sessions[username] = c
	c.username = username
	return true
}

func (h *Hub) roomOf(username string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id, ok := h.members[username]
	return id, ok
}

func (h *Hub) setRoom(username, roomID string) {
	h.mu.Lock()
	h.members[username] = roomID
	h.mu.Unlock()
}

// canLeave reports whether username may swap roomID for another room: its
// game is over, or no other live player is left in it.
func (h *Hub) canLeave(username, roomID string) bool {
	if st, err := h.games.State(roomID); err == nil && st.Finished() {
		return true
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for other, id := range h.members {
		if id == roomID && other != username {
			return false
		}
	}
	return true
}

// lockRoom serializes a transition on roomID with its broadcast.
func (h *Hub) lockRoom(roomID string) func() {
	h.locksMu.Lock()
	l, ok := h.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		h.roomLocks[roomID] = l
	}
	h.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// broadcast enqueues events, in order, to every live session in roomID.
func (h *Hub) broadcast(roomID string, events ...any) {
	frames := make([][]byte, 0, len(events))
	for _, ev := range events {
		b, err := json.Marshal(ev)
		if err != nil {
			logger.Error("marshal broadcast", "room", roomID, "error", err)
			return
		}
		frames = append(frames, b)
	}

	h.mu.RLock()
	targets := make([]*Client, 0, room.Capacity)
	for username, id := range h.members {
		if id != roomID {
			continue
		}
		if c, ok := h.sessions[username]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		for _, f := range frames {
			if !c.enqueue(f) {
				sendFailures.Inc()
				logger.Warn("send queue full or closed", "conn", c.ID, "user", c.username, "room", roomID)
			}
		}
	}
}

// reply sends one event to c only.
func (h *Hub) reply(c *Client, ev any) {
	b, err := json.Marshal(ev)
	if err != nil {
		logger.Error("marshal reply", "conn", c.ID, "error", err)
		return
	}
	if !c.enqueue(b) {
		sendFailures.Inc()
		logger.Warn("send queue full or closed", "conn", c.ID, "user", c.username)
	}
}

// Disconnect drops c from the session map and the membership index.
func (h *Hub) Disconnect(c *Client) {
	username := c.username
	if username == "" {
		return
	}

	h.mu.Lock()
	if h.sessions[username] != c {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, username)
	roomID, inRoom := h.members[username]
	delete(h.members, username)
	h.mu.Unlock()

	logger.Info("player disconnected", "conn", c.ID, "user", username, "room", roomID)

	if !inRoom || h.policy != config.DisconnectForfeit {
		return
	}

	unlock := h.lockRoom(roomID)
	defer unlock()

	st, ok := h.games.Forfeit(roomID, username)
	if !ok {
		return
	}
	gamesFinished.WithLabelValues(st.Reason).Inc()
	h.broadcast(roomID, gameOver(st.Winner, st.Reason))
}

// Sessions returns the number of authenticated sessions.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Presence reports whether username is connected and which room it sits in.
func (h *Hub) Presence(username string) (online bool, roomID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, online = h.sessions[username]
	return online, h.members[username]
}
