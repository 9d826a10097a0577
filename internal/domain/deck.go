package domain

import (
	"math/rand"
	"sort"
)

// NewDeck builds the requested number of full 52-card suit sets plus the
// requested number of jokers, unshuffled, jokers at the back.
func NewDeck(decks, jokers int) []Card {
	deck := make([]Card, 0, decks*52+jokers)
	for d := 0; d < decks; d++ {
		for _, suit := range Suits {
			for _, faceval := range FaceVals {
				deck = append(deck, Card{Suit: suit, FaceVal: faceval})
			}
		}
	}
	for j := 0; j < jokers; j++ {
		deck = append(deck, NewJoker())
	}
	return deck
}

// ShuffleDeck randomizes the deck in place using the provided rng.
func ShuffleDeck(rng *rand.Rand, deck []Card) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// SortCards orders cards ascending by Less for deterministic comparison.
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Less(cards[j]) })
}
