package ports

import (
	"blitz/internal/app"
	"blitz/internal/domain"
)

// GameService is the inbound action surface the presentation layer drives.
// It is implemented by the app service; handlers depend on this interface so
// tests can substitute a fake.
type GameService interface {
	// CreateGame creates a session, joins the creator and makes them active.
	CreateGame(id, creator string, jokers, decks int) error

	// Join adds a named player to an existing game.
	Join(id, player string) error

	// Deal shuffles and redistributes hands per Blitz rules.
	Deal(id, dealer string) error

	// SubmitTurn replaces deck, hand, discards and board wholesale with the
	// client-supplied turn result and advances the active player.
	SubmitTurn(id, player string, deck, hand, discards []domain.Card, board []domain.Meld) error

	// Exit removes a player; the last player out deletes the game.
	Exit(id, player string) error

	// State returns a one-shot snapshot as seen by player.
	State(id, player string) (*app.Snapshot, error)

	// Subscribe opens a new update stream for player, superseding any
	// earlier one for the same player.
	Subscribe(id, player string) (*app.Subscription, error)
}
