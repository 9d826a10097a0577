package domain

import "strconv"

// Suit identifies one of the four French suits or the joker pseudo-suit.
type Suit string

const (
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Jokers   Suit = "joker"
)

// Suits lists the dealable suits in deck construction order.
var Suits = []Suit{Spades, Clubs, Hearts, Diamonds}

// FaceVals lists face values in ascending rank order.
var FaceVals = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// JokerFaceVal is the face value carried by every joker.
const JokerFaceVal = "?"

// Card is a single playing card. Immutable once constructed.
type Card struct {
	Suit    Suit   `json:"suit"`
	FaceVal string `json:"faceval"`
}

// NewJoker returns the joker card value.
func NewJoker() Card {
	return Card{Suit: Jokers, FaceVal: JokerFaceVal}
}

// faceRank returns the rank index of a face value, or -1 if unknown.
func faceRank(faceval string) int {
	for i, v := range FaceVals {
		if v == faceval {
			return i
		}
	}
	return -1
}

// ValidSuit reports whether s names a known suit, including the joker suit.
func ValidSuit(s Suit) bool {
	switch s {
	case Spades, Clubs, Hearts, Diamonds, Jokers:
		return true
	}
	return false
}

// ValidFaceVal reports whether v is a known face value or the joker marker.
func ValidFaceVal(v string) bool {
	return v == JokerFaceVal || faceRank(v) >= 0
}

// Less orders cards for deterministic comparison. Jokers sort after every
// other suit; suits order by name; within a suit, face values compare by rank.
func (c Card) Less(o Card) bool {
	if c.Suit != o.Suit {
		if c.Suit == Jokers {
			return false
		}
		if o.Suit == Jokers {
			return true
		}
		return c.Suit < o.Suit
	}
	return faceRank(c.FaceVal) < faceRank(o.FaceVal)
}

// DealSize returns how many cards a player receives when their first drawn
// card shows the given face value: court cards, aces and jokers deal ten,
// numeric cards deal their printed value.
func DealSize(faceval string) int {
	switch faceval {
	case "J", "Q", "K", "A", JokerFaceVal:
		return 10
	}
	n, err := strconv.Atoi(faceval)
	if err != nil {
		return 0
	}
	return n
}
