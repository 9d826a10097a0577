package app

import (
	"sync"

	"blitz/internal/domain"
)

// Game bundles one session with its notification side tables. All of it is
// guarded by a single per-game mutex so dealing, joins and turn submissions
// against the same game id cannot interleave, while different games never
// contend with each other.
type Game struct {
	mu      sync.Mutex
	removed bool

	Session   *domain.Session
	Notifiers map[string]*Notifier
	Pending   []PendingUpdate
}

// AckPending consumes one acknowledgement against the head of the pending
// queue and reports whether an entry was there to acknowledge. The entry is
// popped once every recipient counted at announcement time has consumed it.
// Caller holds the game lock.
func (g *Game) AckPending() bool {
	if len(g.Pending) == 0 {
		return false
	}
	head := &g.Pending[0]
	head.Acked++
	if head.Acked >= head.TotalRecipients {
		g.Pending = g.Pending[1:]
	}
	return true
}

// Registry is the process-wide arena of active game sessions. Every mutation
// and lookup funnels through it; WithGame applies its callback as one atomic
// step relative to other operations on the same game id.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*Game
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*Game)}
}

// Create registers a new session with decks full suit sets plus jokers
// jokers, unshuffled. Fails with ErrGameExists when the id is taken.
func (r *Registry) Create(id string, jokers, decks int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[id]; exists {
		return ErrGameExists
	}
	r.games[id] = &Game{
		Session:   domain.NewSession(id, jokers, decks),
		Notifiers: make(map[string]*Notifier),
	}
	return nil
}

// WithGame runs fn against the named game under its per-game lock. When fn
// removes the last remaining player the game and its side tables are
// deleted. Returns ErrGameNotFound for unknown or already-deleted ids.
func (r *Registry) WithGame(id string, fn func(g *Game) error) error {
	r.mu.RLock()
	g, exists := r.games[id]
	r.mu.RUnlock()
	if !exists {
		return ErrGameNotFound
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.removed {
		// Lost a race with the last player's exit.
		return ErrGameNotFound
	}

	hadPlayers := len(g.Session.Players) > 0
	err := fn(g)

	if hadPlayers && len(g.Session.Players) == 0 {
		g.removed = true
		r.mu.Lock()
		if current, ok := r.games[id]; ok && current == g {
			delete(r.games, id)
		}
		r.mu.Unlock()
	}
	return err
}

// Has reports whether the id maps to a live game.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.games[id]
	return exists
}
