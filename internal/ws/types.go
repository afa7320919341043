package ws

const (
	// client - server
	MsgAuth        = "auth"
	MsgCreateRoom  = "create_room"
	MsgJoinRoom    = "join_room"
	MsgMove        = "move"
	MsgRestartGame = "restart_game"

	// server - client
	MsgLoggedIn      = "logged_in"
	MsgRoomCreated   = "room_created"
	MsgPlayerJoined  = "player_joined"
	MsgGameStart     = "game_start"
	MsgUpdate        = "update"
	MsgGameOver      = "game_over"
	MsgGameRestarted = "game_restarted"
	MsgError         = "error"
)

// Messages sent with error frames that do not come from a collaborator.
const (
	errLoginFailed     = "Login failed"
	errAlreadyLoggedIn = "Already logged in"
	errNotAllowed      = "message not allowed in current state"
	errNotInRoom       = "not in a room"
)
