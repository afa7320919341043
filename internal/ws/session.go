package ws

import (
	"context"
	"errors"

	"prime31/internal/account"
	"prime31/internal/logger"
	"prime31/internal/room"
)

// HandleMessage runs one client frame through the session protocol. It is
// called from c's read pump only.
func (h *Hub) HandleMessage(c *Client, raw []byte) {
	in, err := DecodeIntent(raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	intentsTotal.WithLabelValues(in.Kind()).Inc()

	if c.username == "" {
		auth, ok := in.(*AuthIntent)
		if !ok {
			h.failMsg(c, "state", errNotAllowed)
			return
		}
		h.handleAuth(c, auth)
		return
	}

	roomID, inRoom := h.roomOf(c.username)

	switch in := in.(type) {
	case *CreateRoomIntent:
		if inRoom && !h.canLeave(c.username, roomID) {
			h.failMsg(c, "state", errNotAllowed)
			return
		}
		h.handleCreateRoom(c)
	case *JoinRoomIntent:
		if inRoom && !h.canLeave(c.username, roomID) {
			h.failMsg(c, "state", errNotAllowed)
			return
		}
		h.handleJoinRoom(c, in.RoomID)
	case *MoveIntent:
		if !inRoom {
			h.failMsg(c, "state", errNotInRoom)
			return
		}
		h.handleMove(c, roomID, in.Prime)
	case *RestartGameIntent:
		if !inRoom {
			h.failMsg(c, "state", errNotInRoom)
			return
		}
		h.handleRestart(c, roomID)
	default:
		h.failMsg(c, "state", errNotAllowed)
	}
}

func (h *Hub) handleAuth(c *Client, in *AuthIntent) {
	ctx := context.Background()

	err := h.accounts.Register(ctx, in.Username, in.Password)
	if err != nil && !errors.Is(err, account.ErrAlreadyExists) {
		logger.Debug("register failed", "conn", c.ID, "user", in.Username, "error", err)
		h.failMsg(c, "auth_failure", errLoginFailed)
		return
	}
	if err := h.accounts.Verify(ctx, in.Username, in.Password); err != nil {
		logger.Debug("verify failed", "conn", c.ID, "user", in.Username, "error", err)
		h.failMsg(c, "auth_failure", errLoginFailed)
		return
	}

	h.admit(c, in.Username)
}

// admit binds an authenticated username to c and confirms the login.
func (h *Hub) admit(c *Client, username string) {
	if !h.login(c, username) {
		h.failMsg(c, "already_logged_in", errAlreadyLoggedIn)
		return
	}
	logger.Info("player logged in", "conn", c.ID, "user", username)
	h.reply(c, loggedIn(username))
}

// handleCreateRoom opens the room under its lock so that no join can fill
// it before the creator's membership and reply are in place.
func (h *Hub) handleCreateRoom(c *Client) {
	id := h.rooms.NextID()
	unlock := h.lockRoom(id)
	defer unlock()

	rm, err := h.rooms.Open(id, c.username)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setRoom(c.username, rm.ID)

	logger.Info("room created", "user", c.username, "room", rm.ID)
	h.reply(c, roomCreated(rm.ID))
}

func (h *Hub) handleJoinRoom(c *Client, roomID string) {
	if _, err := h.rooms.Get(roomID); err != nil {
		h.fail(c, err)
		return
	}

	unlock := h.lockRoom(roomID)
	defer unlock()

	players, err := h.rooms.Join(roomID, c.username)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setRoom(c.username, roomID)
	logger.Info("player joined", "user", c.username, "room", roomID, "players", players)

	if len(players) < room.Capacity {
		h.broadcast(roomID, playerJoined(roomID, players))
		return
	}

	st := h.games.Start(roomID, [2]string{players[0], players[1]})
	gamesStarted.Inc()
	h.broadcast(roomID,
		playerJoined(roomID, players),
		gameStart(st.Turn, st.Players),
		update(st.Sum, st.Turn),
	)
}

func (h *Hub) handleMove(c *Client, roomID string, prime int) {
	unlock := h.lockRoom(roomID)
	defer unlock()

	res, err := h.games.Apply(roomID, c.username, prime)
	if err != nil {
		h.fail(c, err)
		return
	}

	if res.Terminal {
		gamesFinished.WithLabelValues(res.Reason).Inc()
		logger.Info("game over", "room", roomID, "winner", res.Winner, "reason", res.Reason)
		h.broadcast(roomID, gameOver(res.Winner, res.Reason))
		return
	}
	h.broadcast(roomID, update(res.Sum, res.Turn))
}

func (h *Hub) handleRestart(c *Client, roomID string) {
	unlock := h.lockRoom(roomID)
	defer unlock()

	st, err := h.games.Restart(roomID)
	if err != nil {
		h.fail(c, err)
		return
	}
	gamesStarted.Inc()
	logger.Info("game restarted", "user", c.username, "room", roomID)
	h.broadcast(roomID, gameRestarted(st.Turn), update(st.Sum, st.Turn))
}

// fail sends err to the requester only.
func (h *Hub) fail(c *Client, err error) {
	h.failMsg(c, errorKind(err), err.Error())
}

func (h *Hub) failMsg(c *Client, kind, message string) {
	errorsTotal.WithLabelValues(kind).Inc()
	h.reply(c, errorMsg(message))
}
