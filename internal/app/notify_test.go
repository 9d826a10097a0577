package app

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestNotifierRaisesCoalesce(t *testing.T) {
	n := NewNotifier()
	n.Raise()
	n.Raise()
	n.Raise()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := n.Wait(ctx); err != nil {
		t.Fatalf("first wait error: %v", err)
	}

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := n.Wait(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("coalesced raises produced a second wake: %v", err)
	}
}

func TestNotifierWaitHonorsContext(t *testing.T) {
	n := NewNotifier()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := n.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("wait without a raise = %v, want DeadlineExceeded", err)
	}
}

func TestUpdateDeliveredOncePerPlayer(t *testing.T) {
	s := NewService(NewRegistry(), nil, rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.CreateGame("g1", "alice", 0, 1); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := s.Join("g1", "bob"); err != nil {
		t.Fatalf("join error: %v", err)
	}

	subAlice, err := s.Subscribe("g1", "alice")
	if err != nil {
		t.Fatalf("subscribe alice error: %v", err)
	}
	subBob, err := s.Subscribe("g1", "bob")
	if err != nil {
		t.Fatalf("subscribe bob error: %v", err)
	}

	// Bob's join already raised alice's signal; consume that update so the
	// queue starts empty.
	if _, err := subAlice.Next(ctx); err != nil {
		t.Fatalf("drain error: %v", err)
	}

	if err := s.Join("g1", "carol"); err != nil {
		t.Fatalf("join carol error: %v", err)
	}

	snap, err := subAlice.Next(ctx)
	if err != nil {
		t.Fatalf("alice next error: %v", err)
	}
	if snap.Type != SnapshotType {
		t.Fatalf("snapshot type = %q, want %q", snap.Type, SnapshotType)
	}
	if len(snap.Players) != 3 {
		t.Fatalf("snapshot players = %v, want three", snap.Players)
	}

	// Carol counted as served on announcement, alice just consumed hers; only
	// bob's acknowledgement is outstanding.
	err = s.registry.WithGame("g1", func(g *Game) error {
		if len(g.Pending) != 1 || g.Pending[0].Acked != 2 || g.Pending[0].TotalRecipients != 3 {
			t.Fatalf("pending = %+v, want one entry acked 2 of 3", g.Pending)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}

	if _, err := subBob.Next(ctx); err != nil {
		t.Fatalf("bob next error: %v", err)
	}

	err = s.registry.WithGame("g1", func(g *Game) error {
		if len(g.Pending) != 0 {
			t.Fatalf("pending = %+v, want empty after every recipient woke", g.Pending)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
}

func TestResubscribeInvalidatesOlderStream(t *testing.T) {
	s := NewService(NewRegistry(), nil, rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.CreateGame("g1", "alice", 0, 1); err != nil {
		t.Fatalf("create error: %v", err)
	}
	old, err := s.Subscribe("g1", "alice")
	if err != nil {
		t.Fatalf("subscribe error: %v", err)
	}
	replacement, err := s.Subscribe("g1", "alice")
	if err != nil {
		t.Fatalf("resubscribe error: %v", err)
	}
	if replacement.Generation() <= old.Generation() {
		t.Fatalf("generations = %d then %d, want strictly increasing",
			old.Generation(), replacement.Generation())
	}

	if err := s.Join("g1", "bob"); err != nil {
		t.Fatalf("join error: %v", err)
	}

	if _, err := old.Next(ctx); !errors.Is(err, ErrStaleStream) {
		t.Fatalf("superseded stream next = %v, want ErrStaleStream", err)
	}

	// The stale loop must hand its wake to the replacement.
	snap, err := replacement.Next(ctx)
	if err != nil {
		t.Fatalf("replacement next error: %v", err)
	}
	if len(snap.Players) != 2 {
		t.Fatalf("snapshot players = %v, want [alice bob]", snap.Players)
	}
}

func TestSignalWithEmptyQueueStillDelivers(t *testing.T) {
	s := NewService(NewRegistry(), nil, rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.CreateGame("g1", "alice", 0, 1); err != nil {
		t.Fatalf("create error: %v", err)
	}
	sub, err := s.Subscribe("g1", "alice")
	if err != nil {
		t.Fatalf("subscribe error: %v", err)
	}

	err = s.registry.WithGame("g1", func(g *Game) error {
		g.Notifiers["alice"].Raise()
		return nil
	})
	if err != nil {
		t.Fatalf("raise error: %v", err)
	}

	snap, err := sub.Next(ctx)
	if err != nil {
		t.Fatalf("next on spurious wake error: %v", err)
	}
	if snap == nil || snap.ActivePlayer != "alice" {
		t.Fatalf("spurious wake should still yield a snapshot, got %+v", snap)
	}
}

func TestSubscribeUnknownPlayer(t *testing.T) {
	s := NewService(NewRegistry(), nil, rand.New(rand.NewSource(1)))
	if err := s.CreateGame("g1", "alice", 0, 1); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := s.Subscribe("g1", "mallory"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("subscribe stranger = %v, want ErrPlayerNotFound", err)
	}
	if _, err := s.Subscribe("nope", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("subscribe unknown game = %v, want ErrGameNotFound", err)
	}
}

func TestNextAfterGameDeleted(t *testing.T) {
	s := NewService(NewRegistry(), nil, rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.CreateGame("g1", "alice", 0, 1); err != nil {
		t.Fatalf("create error: %v", err)
	}
	sub, err := s.Subscribe("g1", "alice")
	if err != nil {
		t.Fatalf("subscribe error: %v", err)
	}
	notifier := sub.notifier

	if err := s.Exit("g1", "alice"); err != nil {
		t.Fatalf("exit error: %v", err)
	}

	notifier.Raise()
	if _, err := sub.Next(ctx); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("next after game deletion = %v, want ErrGameNotFound", err)
	}
}
