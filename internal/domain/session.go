package domain

import "math/rand"

// Session holds the authoritative state for one Blitz game.
//
// Players are kept in join order, which is also turn order. Every name in
// Players has exactly one entry in Hands; removing a player removes both.
// The front of Deck is the next card dealt; the last element of Discards is
// the top of the pile.
type Session struct {
	ID           string
	Deck         []Card
	Players      []string
	Hands        map[string][]Card
	Discards     []Card
	Board        []Meld
	WildCard     string // face value, empty until a deal fixes it
	Dealer       string
	ActivePlayer string
	JokerCount   int
}

// NewSession constructs a session with an unshuffled deck of the given shape.
func NewSession(id string, jokers, decks int) *Session {
	return &Session{
		ID:         id,
		Deck:       NewDeck(decks, jokers),
		Hands:      make(map[string][]Card),
		JokerCount: jokers,
	}
}

// HasPlayer reports whether name has joined the session.
func (s *Session) HasPlayer(name string) bool {
	_, ok := s.Hands[name]
	return ok
}

// AddPlayer appends a player with an empty hand. Idempotent by name.
func (s *Session) AddPlayer(name string) {
	if s.HasPlayer(name) {
		return
	}
	s.Players = append(s.Players, name)
	s.Hands[name] = nil
}

// RemovePlayer drops the player and their hand. Reports whether the player
// was present.
func (s *Session) RemovePlayer(name string) bool {
	if !s.HasPlayer(name) {
		return false
	}
	delete(s.Hands, name)
	for i, p := range s.Players {
		if p == name {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			break
		}
	}
	return true
}

// PopTopCard removes and returns the next card to be dealt.
func (s *Session) PopTopCard() (Card, bool) {
	if len(s.Deck) == 0 {
		return Card{}, false
	}
	top := s.Deck[0]
	s.Deck = s.Deck[1:]
	return top, true
}

// AppendCard places a card at the back of the deck.
func (s *Session) AppendCard(c Card) {
	s.Deck = append(s.Deck, c)
}

// ReclaimHands returns every held card to the deck and clears all hands.
func (s *Session) ReclaimHands() {
	for _, name := range s.Players {
		s.Deck = append(s.Deck, s.Hands[name]...)
		s.Hands[name] = nil
	}
}

// Shuffle clears every hand and randomizes the deck order uniformly.
// Callers that want held cards back in the deck reclaim them first.
func (s *Session) Shuffle(rng *rand.Rand) {
	for _, name := range s.Players {
		s.Hands[name] = nil
	}
	ShuffleDeck(rng, s.Deck)
}

// NextAfter returns the player following name in join order, wrapping to the
// first player at the end. When name is absent it defaults to the first
// player; an empty session yields "".
func (s *Session) NextAfter(name string) string {
	if len(s.Players) == 0 {
		return ""
	}
	for i, p := range s.Players {
		if p == name {
			return s.Players[(i+1)%len(s.Players)]
		}
	}
	return s.Players[0]
}

// CardCounts returns per-player hand sizes in join order.
func (s *Session) CardCounts() []int {
	counts := make([]int, len(s.Players))
	for i, name := range s.Players {
		counts[i] = len(s.Hands[name])
	}
	return counts
}
