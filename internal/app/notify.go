package app

import (
	"context"
	"sync"
)

// UpdateKind tags entries in a game's pending-update queue.
type UpdateKind string

// UpdateStateChanged is the only update kind currently announced; every
// mutation delivers a full snapshot rather than a typed delta.
const UpdateStateChanged UpdateKind = "update_game"

// PendingUpdate is one outstanding update announcement. It is created by a
// mutating action and removed once every player connected at announcement
// time has consumed it. The acting player is counted as already served.
type PendingUpdate struct {
	Kind            UpdateKind
	TotalRecipients int
	Acked           int
}

// Notifier is the per-(game, player) wake signal for that player's update
// delivery loop. The generation counter distinguishes successive connections
// from the same player so a superseded loop can detect it is stale.
type Notifier struct {
	signal chan struct{}

	mu         sync.Mutex
	generation uint64
}

// NewNotifier returns a notifier with no update pending.
func NewNotifier() *Notifier {
	return &Notifier{signal: make(chan struct{}, 1)}
}

// Raise marks an update available. Non-blocking; raises coalesce while the
// signal is already pending.
func (n *Notifier) Raise() {
	select {
	case n.signal <- struct{}{}:
	default:
	}
}

// Wait blocks until the signal is raised or ctx is done. A successful wait
// consumes the signal.
func (n *Notifier) Wait(ctx context.Context) error {
	select {
	case <-n.signal:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Bump invalidates all earlier connections and returns the new generation.
// There is no proactive interrupt: a superseded loop notices the generation
// mismatch on its next wake and self-terminates, re-raising the signal it
// consumed so the successor loop cannot miss that mutation.
func (n *Notifier) Bump() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	return n.generation
}

// Generation returns the current connection generation.
func (n *Notifier) Generation() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.generation
}
