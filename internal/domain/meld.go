package domain

// MeldType distinguishes the two legal groupings on the game board.
type MeldType string

const (
	// MeldBook is a set of cards sharing one face value.
	MeldBook MeldType = "book"
	// MeldRun is a consecutive same-suit sequence.
	MeldRun MeldType = "run"
)

// ValidMeldType reports whether t names a known meld type.
func ValidMeldType(t MeldType) bool {
	return t == MeldBook || t == MeldRun
}

// MeldCard is one card played to the board, tagged with the player who laid it.
type MeldCard struct {
	Player  string `json:"player"`
	Suit    Suit   `json:"suit"`
	FaceVal string `json:"faceval"`
}

// Meld is a played grouping of cards on the shared board. The board is only
// ever replaced wholesale (redeal or turn submission), never diffed per meld.
type Meld struct {
	Type  MeldType   `json:"type"`
	Cards []MeldCard `json:"meld_cards"`
}
