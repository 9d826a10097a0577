package app

import "blitz/internal/domain"

// SnapshotType is the constant tag carried by every delivered snapshot.
const SnapshotType = string(UpdateStateChanged)

// Snapshot is the full game state serialized for one player: their own hand,
// the shared piles and board, and per-player card counts. It is always a
// complete state, never a delta, so a delivery loop that misses an
// intermediate update still converges on the next snapshot.
type Snapshot struct {
	Type         string        `json:"type"`
	PlayerCards  []domain.Card `json:"player_cards"`
	DeckCards    []domain.Card `json:"deck_cards"`
	Players      []string      `json:"players"`
	Dealer       string        `json:"dealer"`
	ActivePlayer string        `json:"active_player"`
	Discards     []domain.Card `json:"discards"`
	GameBoard    []domain.Meld `json:"gameboard"`
	CardCounts   []int         `json:"card_counts"`
	WildCard     string        `json:"wild_card"`
}

// buildSnapshot serializes the session as seen by one player. Slices are
// copied so the snapshot stays consistent after the game lock is released.
// Caller holds the game lock.
func buildSnapshot(s *domain.Session, player string) (*Snapshot, error) {
	if !s.HasPlayer(player) {
		return nil, ErrPlayerNotFound
	}

	board := make([]domain.Meld, len(s.Board))
	for i, meld := range s.Board {
		board[i] = domain.Meld{
			Type:  meld.Type,
			Cards: append([]domain.MeldCard(nil), meld.Cards...),
		}
	}

	return &Snapshot{
		Type:         SnapshotType,
		PlayerCards:  append([]domain.Card(nil), s.Hands[player]...),
		DeckCards:    append([]domain.Card(nil), s.Deck...),
		Players:      append([]string(nil), s.Players...),
		Dealer:       s.Dealer,
		ActivePlayer: s.ActivePlayer,
		Discards:     append([]domain.Card(nil), s.Discards...),
		GameBoard:    board,
		CardCounts:   s.CardCounts(),
		WildCard:     s.WildCard,
	}, nil
}
