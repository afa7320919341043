package ws

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// Intent is a decoded client message. The set of implementations is closed.
type Intent interface {
	Kind() string
}

type AuthIntent struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateRoomIntent struct{}

type JoinRoomIntent struct {
	RoomID string `json:"room_id"`
}

type MoveIntent struct {
	Prime int `json:"prime"`
}

type RestartGameIntent struct{}

func (*AuthIntent) Kind() string        { return MsgAuth }
func (*CreateRoomIntent) Kind() string  { return MsgCreateRoom }
func (*JoinRoomIntent) Kind() string    { return MsgJoinRoom }
func (*MoveIntent) Kind() string        { return MsgMove }
func (*RestartGameIntent) Kind() string { return MsgRestartGame }

// DecodeIntent parses one client frame into its intent.
func DecodeIntent(raw []byte) (Intent, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrMalformed
	}

	var in Intent
	switch env.Type {
	case MsgAuth:
		in = &AuthIntent{}
	case MsgCreateRoom:
		in = &CreateRoomIntent{}
	case MsgJoinRoom:
		in = &JoinRoomIntent{}
	case MsgMove:
		in = &MoveIntent{}
	case MsgRestartGame:
		in = &RestartGameIntent{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if err := json.Unmarshal(raw, in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, env.Type)
	}
	return in, nil
}

// server → client

type LoggedInPayload struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

type RoomCreatedPayload struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

type PlayerJoinedPayload struct {
	Type    string   `json:"type"`
	RoomID  string   `json:"room_id"`
	Players []string `json:"players"`
}

type GameStartPayload struct {
	Type    string    `json:"type"`
	Turn    string    `json:"turn"`
	Players [2]string `json:"players"`
	Message string    `json:"message"`
}

type UpdatePayload struct {
	Type string `json:"type"`
	Sum  int    `json:"sum"`
	Turn string `json:"turn"`
}

type GameOverPayload struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
	Reason string `json:"reason,omitempty"`
}

type GameRestartedPayload struct {
	Type string `json:"type"`
	Turn string `json:"turn"`
}

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func loggedIn(username string) LoggedInPayload {
	return LoggedInPayload{Type: MsgLoggedIn, Username: username}
}

func roomCreated(roomID string) RoomCreatedPayload {
	return RoomCreatedPayload{Type: MsgRoomCreated, RoomID: roomID}
}

func playerJoined(roomID string, players []string) PlayerJoinedPayload {
	return PlayerJoinedPayload{Type: MsgPlayerJoined, RoomID: roomID, Players: players}
}

func gameStart(turn string, players [2]string) GameStartPayload {
	return GameStartPayload{Type: MsgGameStart, Turn: turn, Players: players, Message: "Game started!"}
}

func update(sum int, turn string) UpdatePayload {
	return UpdatePayload{Type: MsgUpdate, Sum: sum, Turn: turn}
}

func gameOver(winner, reason string) GameOverPayload {
	return GameOverPayload{Type: MsgGameOver, Winner: winner, Reason: reason}
}

func gameRestarted(turn string) GameRestartedPayload {
	return GameRestartedPayload{Type: MsgGameRestarted, Turn: turn}
}

func errorMsg(message string) ErrorPayload {
	return ErrorPayload{Type: MsgError, Message: message}
}
