package app

import (
	"errors"
	"sync"
	"testing"

	"blitz/internal/domain"
)

func TestCreateRejectsDuplicateID(t *testing.T) {
	r := NewRegistry()
	if err := r.Create("g1", 2, 1); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := r.Create("g1", 0, 1); !errors.Is(err, ErrGameExists) {
		t.Fatalf("duplicate create = %v, want ErrGameExists", err)
	}
}

func TestWithGameUnknownID(t *testing.T) {
	r := NewRegistry()
	err := r.WithGame("missing", func(g *Game) error { return nil })
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("WithGame on unknown id = %v, want ErrGameNotFound", err)
	}
}

func TestLastPlayerRemovalDeletesGame(t *testing.T) {
	r := NewRegistry()
	if err := r.Create("g1", 2, 1); err != nil {
		t.Fatalf("create error: %v", err)
	}
	err := r.WithGame("g1", func(g *Game) error {
		g.Session.AddPlayer("alice")
		return nil
	})
	if err != nil {
		t.Fatalf("join error: %v", err)
	}

	err = r.WithGame("g1", func(g *Game) error {
		g.Session.RemovePlayer("alice")
		return nil
	})
	if err != nil {
		t.Fatalf("leave error: %v", err)
	}

	if r.Has("g1") {
		t.Fatalf("game should be deleted when the last player leaves")
	}
	err = r.WithGame("g1", func(g *Game) error { return nil })
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("WithGame after deletion = %v, want ErrGameNotFound", err)
	}
}

func TestAckPending(t *testing.T) {
	g := &Game{Session: domain.NewSession("g1", 0, 1)}
	g.Pending = append(g.Pending, PendingUpdate{Kind: UpdateStateChanged, TotalRecipients: 2, Acked: 1})

	if !g.AckPending() {
		t.Fatalf("expected an entry to acknowledge")
	}
	if len(g.Pending) != 0 {
		t.Fatalf("entry should pop once every recipient acknowledged")
	}
	if g.AckPending() {
		t.Fatalf("empty queue should report nothing to acknowledge")
	}
}

func TestConcurrentMutationsOnDifferentGames(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"g1", "g2"} {
		if err := r.Create(id, 0, 1); err != nil {
			t.Fatalf("create %s error: %v", id, err)
		}
	}

	var wg sync.WaitGroup
	for _, id := range []string{"g1", "g2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = r.WithGame(id, func(g *Game) error {
					g.Session.AddPlayer("p")
					g.Session.Hands["p"] = append(g.Session.Hands["p"], domain.Card{Suit: domain.Spades, FaceVal: "2"})
					return nil
				})
			}
		}(id)
	}
	wg.Wait()

	for _, id := range []string{"g1", "g2"} {
		err := r.WithGame(id, func(g *Game) error {
			if len(g.Session.Hands["p"]) != 100 {
				t.Errorf("%s: hand = %d cards, want 100", id, len(g.Session.Hands["p"]))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("inspect %s error: %v", id, err)
		}
	}
}
