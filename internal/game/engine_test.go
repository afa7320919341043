package game

import (
	"errors"
	"testing"
)

func TestEngineUnknownRoom(t *testing.T) {
	e := NewEngine()

	if _, err := e.Apply("R9", "alice", 2); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("Apply: got %v; want ErrGameNotFound", err)
	}
	if _, err := e.Restart("R9"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("Restart: got %v; want ErrGameNotFound", err)
	}
	if _, err := e.State("R9"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("State: got %v; want ErrGameNotFound", err)
	}
	if _, ok := e.Forfeit("R9", "alice"); ok {
		t.Fatalf("Forfeit on unknown room must report false")
	}
}

func TestEngineRoomsAreIndependent(t *testing.T) {
	e := NewEngine()
	e.Start("R0", [2]string{"alice", "bob"})
	e.Start("R1", [2]string{"carol", "dave"})

	if _, err := e.Apply("R0", "alice", 11); err != nil {
		t.Fatalf("Apply R0: %v", err)
	}
	if _, err := e.Apply("R1", "alice", 2); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("Apply R1 by outsider: got %v; want ErrNotYourTurn", err)
	}

	s0, _ := e.State("R0")
	s1, _ := e.State("R1")
	if s0.Sum != 11 || s1.Sum != 0 {
		t.Fatalf("unexpected sums: R0=%d R1=%d", s0.Sum, s1.Sum)
	}
	if e.Len() != 2 {
		t.Fatalf("Len = %d; want 2", e.Len())
	}
}

func TestEngineRestart(t *testing.T) {
	e := NewEngine()
	e.Start("R0", [2]string{"alice", "bob"})
	if _, err := e.Apply("R0", "alice", 5); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	s, err := e.Restart("R0")
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Sum != 0 || s.Turn != "alice" || s.Players != [2]string{"alice", "bob"} {
		t.Fatalf("unexpected state after restart: %+v", s)
	}
}
