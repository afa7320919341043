package handlers

import (
	"context"

	"prime31/internal/game"
	"prime31/internal/room"
)

// Accounts registers and verifies player credentials.
type Accounts interface {
	Register(ctx context.Context, username, password string) error
	Verify(ctx context.Context, username, password string) error
}

// Presence reports live relay sessions.
type Presence interface {
	Presence(username string) (online bool, roomID string)
}

type Handler struct {
	Accounts Accounts
	Presence Presence
	Rooms    *room.Registry
	Games    *game.Engine
}

func NewHandler(accounts Accounts, presence Presence, rooms *room.Registry, games *game.Engine) *Handler {
	return &Handler{
		Accounts: accounts,
		Presence: presence,
		Rooms:    rooms,
		Games:    games,
	}
}
