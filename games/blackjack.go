package games

import (
	"casino/models"
)

// BlackjackResolver plays a single blackjack round with a fixed policy:
// both the player and the dealer draw until reaching 17 or more. There is
// no decision tree; the whole round resolves from one request.
type BlackjackResolver struct{}

func (r *BlackjackResolver) GameType() models.GameType {
	return models.GameTypeBlackjack
}

func (r *BlackjackResolver) ValidateParams(req *models.WagerRequest) error {
	return nil
}

func (r *BlackjackResolver) Resolve(req *models.WagerRequest, src Source) models.Outcome {
	deck := shuffledDeck(src)
	deal := func() Card {
		c := deck[len(deck)-1]
		deck = deck[:len(deck)-1]
		return c
	}

	player := []Card{deal(), deal()}
	dealer := []Card{deal(), deal()}

	playerNatural := handValue(player) == 21
	dealerNatural := handValue(dealer) == 21

	// Both stand on 17, the standard dealer rule, applied to the player
	// as the fixed policy.
	for handValue(player) < 17 {
		player = append(player, deal())
	}
	if handValue(player) <= 21 {
		for handValue(dealer) < 17 {
			dealer = append(dealer, deal())
		}
	}

	playerValue := handValue(player)
	dealerValue := handValue(dealer)

	outcome := models.Outcome{
		Detail: map[string]any{
			"player_hand":  cardStrings(player),
			"dealer_hand":  cardStrings(dealer),
			"player_value": playerValue,
			"dealer_value": dealerValue,
		},
	}

	switch {
	case playerNatural && dealerNatural:
		outcome.Push = true
		outcome.Multiplier = 1
	case playerNatural:
		// Naturals pay 3:2, a fair total return of 2.5x.
		outcome.Won = true
		outcome.Multiplier = 2.5 * (1 - BlackjackEdge)
		outcome.Detail["natural"] = true
	case playerValue > 21:
		// Loss, multiplier stays 0.
	case dealerValue > 21 || playerValue > dealerValue:
		outcome.Won = true
		outcome.Multiplier = 2 * (1 - BlackjackEdge)
	case playerValue == dealerValue:
		outcome.Push = true
		outcome.Multiplier = 1
	}

	return outcome
}

// handValue scores a blackjack hand, counting aces as 11 where that does
// not bust the hand.
func handValue(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		switch c.Rank {
		case "A":
			aces++
		case "J", "Q", "K", "10":
			total += 10
		default:
			total += int(c.Rank[0] - '0')
		}
	}
	for i := 0; i < aces; i++ {
		if total+11 <= 21 {
			total += 11
		} else {
			total++
		}
	}
	return total
}
