package httpapi

import "blitz/internal/domain"

// wireCard is the {suit, faceval} pair clients exchange with the server.
type wireCard struct {
	Suit    string `json:"suit"`
	FaceVal string `json:"faceval"`
}

type wireMeldCard struct {
	Player  string `json:"player"`
	Suit    string `json:"suit"`
	FaceVal string `json:"faceval"`
}

type wireMeld struct {
	Type      string         `json:"type"`
	MeldCards []wireMeldCard `json:"meld_cards"`
}

func toDomainCards(cards []wireCard) []domain.Card {
	out := make([]domain.Card, len(cards))
	for i, card := range cards {
		out[i] = domain.Card{Suit: domain.Suit(card.Suit), FaceVal: card.FaceVal}
	}
	return out
}

func toDomainMelds(melds []wireMeld) []domain.Meld {
	out := make([]domain.Meld, len(melds))
	for i, meld := range melds {
		cards := make([]domain.MeldCard, len(meld.MeldCards))
		for j, mc := range meld.MeldCards {
			cards[j] = domain.MeldCard{
				Player:  mc.Player,
				Suit:    domain.Suit(mc.Suit),
				FaceVal: mc.FaceVal,
			}
		}
		out[i] = domain.Meld{Type: domain.MeldType(meld.Type), Cards: cards}
	}
	return out
}
