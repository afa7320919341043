package ws

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeIntent(t *testing.T) {
	tests := []struct {
		raw     string
		kind    string
		wantErr error
	}{
		{`{"type":"auth","username":"a","password":"b"}`, MsgAuth, nil},
		{`{"type":"create_room"}`, MsgCreateRoom, nil},
		{`{"type":"join_room","room_id":"R0"}`, MsgJoinRoom, nil},
		{`{"type":"move","prime":7}`, MsgMove, nil},
		{`{"type":"restart_game"}`, MsgRestartGame, nil},
		{`{"type":"move","prime":"seven"}`, "", ErrMalformed},
		{`{"type":"dance"}`, "", ErrUnknownType},
		{`{}`, "", ErrUnknownType},
		{`[1,2]`, "", ErrMalformed},
		{``, "", ErrMalformed},
	}

	for _, tt := range tests {
		in, err := DecodeIntent([]byte(tt.raw))
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%s: expected %v, got %v", tt.raw, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.raw, err)
		}
		if in.Kind() != tt.kind {
			t.Fatalf("%s: kind %s, want %s", tt.raw, in.Kind(), tt.kind)
		}
	}
}

func TestDecodeIntentFields(t *testing.T) {
	in, err := DecodeIntent([]byte(`{"type":"move","prime":11}`))
	if err != nil {
		t.Fatal(err)
	}
	if m := in.(*MoveIntent); m.Prime != 11 {
		t.Fatalf("prime = %d", m.Prime)
	}

	in, err = DecodeIntent([]byte(`{"type":"join_room","room_id":"R4"}`))
	if err != nil {
		t.Fatal(err)
	}
	if j := in.(*JoinRoomIntent); j.RoomID != "R4" {
		t.Fatalf("room_id = %q", j.RoomID)
	}
}

func TestOutboundFieldNames(t *testing.T) {
	b, _ := json.Marshal(gameOver("bob", "trap"))
	if string(b) != `{"type":"game_over","winner":"bob","reason":"trap"}` {
		t.Fatalf("game_over = %s", b)
	}
	b, _ = json.Marshal(update(0, "alice"))
	if string(b) != `{"type":"update","sum":0,"turn":"alice"}` {
		t.Fatalf("update = %s", b)
	}
}
