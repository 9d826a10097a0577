package app

import (
	"context"

	"go.uber.org/zap"
)

// Subscription is one connection's handle on a player's update stream. Each
// Subscribe call bumps the notifier generation, so an older subscription for
// the same player observes the mismatch on its next wake and terminates.
type Subscription struct {
	service    *Service
	gameID     string
	player     string
	notifier   *Notifier
	generation uint64
}

// Subscribe registers a new connection for the player's update stream and
// invalidates any previous one.
func (s *Service) Subscribe(id, player string) (*Subscription, error) {
	var sub *Subscription
	err := s.registry.WithGame(id, func(g *Game) error {
		notifier, ok := g.Notifiers[player]
		if !ok {
			return ErrPlayerNotFound
		}
		sub = &Subscription{
			service:    s,
			gameID:     id,
			player:     player,
			notifier:   notifier,
			generation: notifier.Bump(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("subscription opened",
		zap.String("game_id", id),
		zap.String("player", player),
		zap.Uint64("generation", sub.generation))
	return sub, nil
}

// Next blocks until a state change is announced, then consumes one pending
// acknowledgement and returns a full snapshot for this player.
//
// It returns ErrStaleStream when a newer connection has superseded this one;
// the wake it consumed is re-raised so the successor loop cannot miss the
// mutation that triggered it. A raised signal with an empty pending queue is
// an expected race between a join and a signal: it is logged and a
// best-effort snapshot is emitted anyway.
func (sub *Subscription) Next(ctx context.Context) (*Snapshot, error) {
	if err := sub.notifier.Wait(ctx); err != nil {
		return nil, err
	}

	if sub.notifier.Generation() != sub.generation {
		sub.notifier.Raise()
		return nil, ErrStaleStream
	}

	var snap *Snapshot
	err := sub.service.registry.WithGame(sub.gameID, func(g *Game) error {
		if !g.AckPending() {
			sub.service.logger.Warn("signal raised with empty update queue",
				zap.String("game_id", sub.gameID),
				zap.String("player", sub.player))
		}
		var err error
		snap, err = buildSnapshot(g.Session, sub.player)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Generation returns the connection generation this subscription captured.
func (sub *Subscription) Generation() uint64 {
	return sub.generation
}
