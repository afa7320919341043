package room

import (
	"errors"
	"sync"
	"testing"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	r := NewRegistry()

	for i, want := range []string{"R0", "R1", "R2"} {
		rm := r.Create("alice")
		if rm.ID != want {
			t.Fatalf("room %d: got id %s; want %s", i, rm.ID, want)
		}
		if rm.Status != StatusWaiting || len(rm.Players) != 1 || rm.Players[0] != "alice" {
			t.Fatalf("room %d: unexpected room %+v", i, rm)
		}
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d; want 3", r.Len())
	}
}

func TestJoin(t *testing.T) {
	r := NewRegistry()
	rm := r.Create("alice")

	players, err := r.Join(rm.ID, "bob")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(players) != 2 || players[0] != "alice" || players[1] != "bob" {
		t.Fatalf("unexpected players: %v", players)
	}

	got, err := r.Get(rm.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusFull {
		t.Fatalf("status = %s; want full", got.Status)
	}
}

func TestJoinErrors(t *testing.T) {
	r := NewRegistry()
	waiting := r.Create("alice")
	full := r.Create("carol")
	if _, err := r.Join(full.ID, "dave"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	cases := []struct {
		name     string
		id       string
		username string
		want     error
	}{
		{"unknown room", "R42", "bob", ErrNotFound},
		{"third player", full.ID, "erin", ErrRoomFull},
		{"full room checked before duplicate", full.ID, "carol", ErrRoomFull},
		{"owner joins own room", waiting.ID, "alice", ErrDuplicateJoin},
	}

	for _, tc := range cases {
		var before Room
		if tc.want != ErrNotFound {
			before, _ = r.Get(tc.id)
		}

		_, err := r.Join(tc.id, tc.username)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v; want %v", tc.name, err, tc.want)
		}

		if tc.want != ErrNotFound {
			after, _ := r.Get(tc.id)
			if len(after.Players) != len(before.Players) || after.Status != before.Status {
				t.Fatalf("%s: room mutated: before %+v after %+v", tc.name, before, after)
			}
		}
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	r := NewRegistry()
	rm := r.Create("alice")
	rm.Players[0] = "mallory"

	players, err := r.Join(rm.ID, "bob")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	players[1] = "mallory"

	got, _ := r.Get(rm.ID)
	if got.Players[0] != "alice" || got.Players[1] != "bob" {
		t.Fatalf("registry state leaked through snapshot: %v", got.Players)
	}
}

func TestConcurrentJoinsNeverExceedCapacity(t *testing.T) {
	r := NewRegistry()
	rm := r.Create("owner")

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := r.Join(rm.ID, "player"+string(rune('a'+n)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	joined := 0
	for err := range errs {
		if err == nil {
			joined++
		} else if !errors.Is(err, ErrRoomFull) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if joined != 1 {
		t.Fatalf("joined = %d; want 1", joined)
	}

	got, _ := r.Get(rm.ID)
	if len(got.Players) != Capacity {
		t.Fatalf("players = %v; want %d", got.Players, Capacity)
	}
}

func TestNextIDThenOpen(t *testing.T) {
	r := NewRegistry()

	id := r.NextID()
	if _, err := r.Get(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("reserved id visible before Open: %v", err)
	}
	if _, err := r.Join(id, "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("join before Open: %v", err)
	}

	rm, err := r.Open(id, "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if rm.ID != id || rm.Players[0] != "alice" {
		t.Fatalf("unexpected room %+v", rm)
	}
	if _, err := r.Open(id, "carol"); !errors.Is(err, ErrExists) {
		t.Fatalf("second Open: expected ErrExists, got %v", err)
	}

	if next := r.Create("dave"); next.ID == id {
		t.Fatalf("Create reused reserved id %s", id)
	}
}
