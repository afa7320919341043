package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"time"

	"prime31/internal/game"
	"prime31/internal/logger"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

type frame struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	RoomID   string `json:"room_id"`
	Sum      int    `json:"sum"`
	Turn     string `json:"turn"`
	Winner   string `json:"winner"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

type player struct {
	name string
	conn *websocket.Conn
}

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "gateway host:port")
	password := flag.String("password", "smoke", "password for both smoke players")
	flag.Parse()

	suffix := time.Now().Format("150405")
	a, err := connect(*addr, "smokeA"+suffix, *password)
	if err != nil {
		logger.Fatal("player A", "error", err)
	}
	defer a.conn.Close()

	b, err := connect(*addr, "smokeB"+suffix, *password)
	if err != nil {
		logger.Fatal("player B", "error", err)
	}
	defer b.conn.Close()

	if err := a.send(map[string]any{"type": "create_room"}); err != nil {
		logger.Fatal("create room", "error", err)
	}
	created, err := a.expect("room_created")
	if err != nil {
		logger.Fatal("create room", "error", err)
	}
	logger.Info("room created", "room", created.RoomID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.play(ctx) })
	g.Go(func() error {
		if err := b.send(map[string]any{"type": "join_room", "room_id": created.RoomID}); err != nil {
			return err
		}
		return b.play(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("smoke game failed", "error", err)
	}
	logger.Info("smoke test finished")
}

func connect(addr, name, password string) (*player, error) {
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/ws", addr), nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	p := &player{name: name, conn: conn}

	if err := p.send(map[string]any{"type": "auth", "username": name, "password": password}); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := p.expect("logged_in"); err != nil {
		conn.Close()
		return nil, err
	}
	logger.Info("logged in", "user", name)
	return p, nil
}

func (p *player) send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.conn.WriteMessage(websocket.TextMessage, b)
}

func (p *player) read() (frame, error) {
	var f frame
	_ = p.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := p.conn.ReadMessage()
	if err != nil {
		return f, fmt.Errorf("%s read: %w", p.name, err)
	}
	if err := json.Unmarshal(msg, &f); err != nil {
		return f, fmt.Errorf("%s decode %q: %w", p.name, msg, err)
	}
	return f, nil
}

func (p *player) expect(typ string) (frame, error) {
	f, err := p.read()
	if err != nil {
		return f, err
	}
	if f.Type != typ {
		return f, fmt.Errorf("%s: expected %s, got %s %s", p.name, typ, f.Type, f.Message)
	}
	return f, nil
}

// play answers every update addressed to p until the game ends.
func (p *player) play(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := p.read()
		if err != nil {
			return err
		}

		switch f.Type {
		case "update":
			if f.Turn != p.name {
				continue
			}
			prime := pick(f.Sum)
			logger.Info("move", "user", p.name, "sum", f.Sum, "prime", prime)
			if err := p.send(map[string]any{"type": "move", "prime": prime}); err != nil {
				return err
			}
		case "game_over":
			logger.Info("game over", "user", p.name, "winner", f.Winner, "reason", f.Reason)
			return nil
		case "error":
			return errors.New(p.name + ": " + f.Message)
		}
	}
}

// pick prefers a winning prime and otherwise the smallest legal one.
func pick(sum int) int {
	moves := game.LegalMoves(sum)
	for _, m := range moves {
		if sum+m == game.Target {
			return m
		}
	}
	return moves[0]
}
