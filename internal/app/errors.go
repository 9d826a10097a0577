package app

import "errors"

var (
	// ErrGameNotFound indicates an unknown game id. No state is mutated.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameExists indicates a create with an id already in use.
	ErrGameExists = errors.New("game id already in use")
	// ErrPlayerNotFound indicates the named player is not in the game.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrNameTaken indicates a join with a name already present.
	ErrNameTaken = errors.New("player name already taken")
	// ErrEmptyDeck indicates the deck ran out mid-deal: too many players for
	// too few decks. The deal aborts without leaving partial hands.
	ErrEmptyDeck = errors.New("deck exhausted during deal")
	// ErrMalformedSubmission indicates a turn payload that failed shape
	// checks. Rejected before any state is touched.
	ErrMalformedSubmission = errors.New("malformed turn submission")
	// ErrStaleStream ends a delivery loop that a newer connection from the
	// same player has superseded. Internal; not surfaced as a user error.
	ErrStaleStream = errors.New("stream superseded by newer connection")
)
