package room

import (
	"errors"
	"strconv"
	"sync"
	"time"
)

// Capacity is the number of players a room holds.
const Capacity = 2

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusFull    Status = "full"
)

var (
	ErrNotFound      = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrDuplicateJoin = errors.New("you are already in this room")
	ErrExists        = errors.New("room already exists")
)

// Room is a snapshot of a pairing unit. Players are kept in join order.
type Room struct {
	ID        string    `json:"room_id"`
	Players   []string  `json:"players"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Registry allocates room identifiers and tracks who sits in which room.
// Rooms live for the lifetime of the process.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	seq   int64
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		now:   time.Now,
	}
}

// Create allocates a fresh room with owner as its only player.
func (r *Registry) Create(owner string) Room {
	rm, _ := r.Open(r.NextID(), owner)
	return rm
}

// NextID reserves a fresh room identifier. The room becomes visible to
// Get and Join only once Open is called with it.
func (r *Registry) NextID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := "R" + strconv.FormatInt(r.seq, 10)
	r.seq++
	return id
}

// Open creates room id with owner as its only player.
func (r *Registry) Open(id, owner string) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; ok {
		return Room{}, ErrExists
	}
	rm := &Room{
		ID:        id,
		Players:   []string{owner},
		Status:    StatusWaiting,
		CreatedAt: r.now(),
	}
	r.rooms[id] = rm
	return rm.snapshot(), nil
}

// Join appends username to the room and returns the updated player list.
// The room is unchanged when an error is returned.
func (r *Registry) Join(id, username string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	if len(rm.Players) >= Capacity {
		return nil, ErrRoomFull
	}
	for _, p := range rm.Players {
		if p == username {
			return nil, ErrDuplicateJoin
		}
	}

	rm.Players = append(rm.Players, username)
	if len(rm.Players) == Capacity {
		rm.Status = StatusFull
	}
	return append([]string(nil), rm.Players...), nil
}

func (r *Registry) Get(id string) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[id]
	if !ok {
		return Room{}, ErrNotFound
	}
	return rm.snapshot(), nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func (rm *Room) snapshot() Room {
	cp := *rm
	cp.Players = append([]string(nil), rm.Players...)
	return cp
}
