package app

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"blitz/internal/domain"
)

// Service implements the Blitz use-cases on top of the registry: create,
// join, deal, turn submission and exit, each applied as one atomic sequence
// of registry, notifier and pending-queue operations.
type Service struct {
	registry *Registry
	logger   *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default. A nil logger disables logging.
func NewService(registry *Registry, logger *zap.Logger, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{registry: registry, logger: logger, rng: rng}
}

// CreateGame creates a session, joins the creator and makes them active.
// Fails with ErrGameExists when the id is taken.
func (s *Service) CreateGame(id, creator string, jokers, decks int) error {
	if err := s.registry.Create(id, jokers, decks); err != nil {
		return err
	}
	err := s.registry.WithGame(id, func(g *Game) error {
		g.Session.AddPlayer(creator)
		g.Session.ActivePlayer = creator
		g.Notifiers[creator] = NewNotifier()
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("game created",
		zap.String("game_id", id),
		zap.String("creator", creator),
		zap.Int("jokers", jokers),
		zap.Int("decks", decks))
	return nil
}

// Join adds a player to an existing game and announces the change to every
// other connected player. Fails with ErrGameNotFound or ErrNameTaken.
func (s *Service) Join(id, player string) error {
	err := s.registry.WithGame(id, func(g *Game) error {
		if g.Session.HasPlayer(player) {
			return ErrNameTaken
		}
		g.Session.AddPlayer(player)
		g.Notifiers[player] = NewNotifier()
		s.announce(g, player)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("player joined", zap.String("game_id", id), zap.String("player", player))
	return nil
}

// Deal reclaims all cards, shuffles and redistributes hands per Blitz rules:
// each player's first drawn card determines their hand size, the dealer's
// first draw fixes the wild card, and one card opens the discard pile. The
// player after the dealer in join order becomes active. A deck too small for
// the table fails with ErrEmptyDeck before any hand is touched.
func (s *Service) Deal(id, dealer string) error {
	err := s.registry.WithGame(id, func(g *Game) error {
		sess := g.Session
		if !sess.HasPlayer(dealer) {
			return ErrPlayerNotFound
		}

		sess.ReclaimHands()
		s.shuffle(sess)

		// Stage the distribution on copies so deck exhaustion aborts with
		// every hand still intact (empty, from the reclaim above).
		deck := append([]domain.Card(nil), sess.Deck...)
		hands := make(map[string][]domain.Card, len(sess.Players))
		wild := ""
		for _, player := range sess.Players {
			if len(deck) == 0 {
				return ErrEmptyDeck
			}
			first := deck[0]
			total := domain.DealSize(first.FaceVal)
			if len(deck) < total {
				return ErrEmptyDeck
			}
			if player == dealer && wild == "" {
				wild = first.FaceVal
			}
			hands[player] = append([]domain.Card(nil), deck[:total]...)
			deck = deck[total:]
		}
		if len(deck) == 0 {
			return ErrEmptyDeck
		}
		discard := deck[0]
		deck = deck[1:]

		for player, hand := range hands {
			sess.Hands[player] = hand
		}
		sess.Deck = deck
		sess.Discards = []domain.Card{discard}
		sess.Board = nil
		sess.WildCard = wild
		sess.Dealer = dealer
		sess.ActivePlayer = sess.NextAfter(dealer)

		s.announce(g, dealer)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("cards dealt", zap.String("game_id", id), zap.String("dealer", dealer))
	return nil
}

// SubmitTurn replaces the deck, the submitter's hand, the discard pile and
// the board wholesale with the client-supplied lists, then advances the
// active player. The server does not validate meld legality or card
// conservation here: clients are trusted to submit correct turn results, so
// a buggy or hostile client can desynchronize shared state. Only shape
// checks run, and they run before anything is mutated.
func (s *Service) SubmitTurn(id, player string, deck, hand, discards []domain.Card, board []domain.Meld) error {
	for _, cards := range [][]domain.Card{deck, hand, discards} {
		if err := validateCards(cards); err != nil {
			return err
		}
	}
	if err := validateMelds(board); err != nil {
		return err
	}

	err := s.registry.WithGame(id, func(g *Game) error {
		sess := g.Session
		if !sess.HasPlayer(player) {
			return ErrPlayerNotFound
		}
		sess.Deck = append([]domain.Card(nil), deck...)
		sess.Hands[player] = append([]domain.Card(nil), hand...)
		sess.Discards = append([]domain.Card(nil), discards...)
		sess.Board = append([]domain.Meld(nil), board...)
		sess.ActivePlayer = sess.NextAfter(player)

		s.announce(g, player)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("turn submitted", zap.String("game_id", id), zap.String("player", player))
	return nil
}

// Exit removes a player and their hand. The last player out deletes the game
// entirely; otherwise the remaining players are notified.
func (s *Service) Exit(id, player string) error {
	err := s.registry.WithGame(id, func(g *Game) error {
		if !g.Session.RemovePlayer(player) {
			return ErrPlayerNotFound
		}
		delete(g.Notifiers, player)
		if len(g.Session.Players) > 0 {
			s.announce(g, player)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("player exited", zap.String("game_id", id), zap.String("player", player))
	return nil
}

// State returns a one-shot snapshot of the game as seen by player, outside
// of any update stream.
func (s *Service) State(id, player string) (*Snapshot, error) {
	var snap *Snapshot
	err := s.registry.WithGame(id, func(g *Game) error {
		var err error
		snap, err = buildSnapshot(g.Session, player)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// announce queues one pending update and wakes every other connected
// player's delivery loop. The actor counts as already served, matching the
// action response they receive directly. Caller holds the game lock.
func (s *Service) announce(g *Game, actor string) {
	g.Pending = append(g.Pending, PendingUpdate{
		Kind:            UpdateStateChanged,
		TotalRecipients: len(g.Session.Players),
		Acked:           1,
	})
	for player, notifier := range g.Notifiers {
		if player != actor {
			notifier.Raise()
		}
	}
}

// shuffle randomizes a session deck. The rng is shared across games and is
// not goroutine safe, so it gets its own lock.
func (s *Service) shuffle(sess *domain.Session) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	sess.Shuffle(s.rng)
}

func validateCards(cards []domain.Card) error {
	for _, c := range cards {
		if !domain.ValidSuit(c.Suit) || !domain.ValidFaceVal(c.FaceVal) {
			return fmt.Errorf("%w: unknown card %s/%s", ErrMalformedSubmission, c.Suit, c.FaceVal)
		}
	}
	return nil
}

func validateMelds(board []domain.Meld) error {
	for _, meld := range board {
		if !domain.ValidMeldType(meld.Type) {
			return fmt.Errorf("%w: unknown meld type %q", ErrMalformedSubmission, meld.Type)
		}
		for _, mc := range meld.Cards {
			if !domain.ValidSuit(mc.Suit) || !domain.ValidFaceVal(mc.FaceVal) {
				return fmt.Errorf("%w: unknown meld card %s/%s", ErrMalformedSubmission, mc.Suit, mc.FaceVal)
			}
		}
	}
	return nil
}
