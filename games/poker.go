package games

import (
	"sort"

	"casino/models"
)

// PokerResolver deals a five-card hand and pays by tier (Jacks or Better)
type PokerResolver struct{}

// HandTier names a poker hand category
type HandTier string

const (
	TierRoyalFlush    HandTier = "royal_flush"
	TierStraightFlush HandTier = "straight_flush"
	TierFourOfAKind   HandTier = "four_of_a_kind"
	TierFullHouse     HandTier = "full_house"
	TierFlush         HandTier = "flush"
	TierStraight      HandTier = "straight"
	TierThreeOfAKind  HandTier = "three_of_a_kind"
	TierTwoPair       HandTier = "two_pair"
	TierJacksOrBetter HandTier = "jacks_or_better"
	TierNothing       HandTier = "nothing"
)

// pokerPayouts maps each winning tier to its net-win multiple. The total
// return on a win is bet * (payout + 1), edge-adjusted.
var pokerPayouts = map[HandTier]int64{
	TierRoyalFlush:    250,
	TierStraightFlush: 50,
	TierFourOfAKind:   25,
	TierFullHouse:     9,
	TierFlush:         6,
	TierStraight:      4,
	TierThreeOfAKind:  3,
	TierTwoPair:       2,
	TierJacksOrBetter: 1,
	TierNothing:       0,
}

func (r *PokerResolver) GameType() models.GameType {
	return models.GameTypePoker
}

func (r *PokerResolver) ValidateParams(req *models.WagerRequest) error {
	return nil
}

func (r *PokerResolver) Resolve(req *models.WagerRequest, src Source) models.Outcome {
	deck := shuffledDeck(src)
	hand := deck[len(deck)-5:]

	tier := EvaluateHand(hand)
	payout := pokerPayouts[tier]

	outcome := models.Outcome{
		Detail: map[string]any{
			"hand":      cardStrings(hand),
			"hand_type": string(tier),
		},
	}
	if payout > 0 {
		outcome.Won = true
		outcome.Multiplier = float64(payout+1) * (1 - PokerEdge)
	}
	return outcome
}

// EvaluateHand classifies a five-card hand into its tier
func EvaluateHand(hand []Card) HandTier {
	values := make([]int, len(hand))
	counts := make(map[int]int)
	flush := true
	for i, c := range hand {
		values[i] = rankOrder[c.Rank]
		counts[values[i]]++
		if c.Suit != hand[0].Suit {
			flush = false
		}
	}
	sort.Ints(values)

	straight := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[0]+i {
			straight = false
			break
		}
	}
	// Wheel: A-2-3-4-5
	if !straight && values[0] == 0 && values[1] == 1 && values[2] == 2 && values[3] == 3 && values[4] == 12 {
		straight = true
	}

	groups := make([]int, 0, len(counts))
	for _, n := range counts {
		groups = append(groups, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))

	switch {
	case flush && straight && values[0] == 8:
		return TierRoyalFlush
	case flush && straight:
		return TierStraightFlush
	case groups[0] == 4:
		return TierFourOfAKind
	case groups[0] == 3 && groups[1] == 2:
		return TierFullHouse
	case flush:
		return TierFlush
	case straight:
		return TierStraight
	case groups[0] == 3:
		return TierThreeOfAKind
	case groups[0] == 2 && groups[1] == 2:
		return TierTwoPair
	case groups[0] == 2:
		for v, n := range counts {
			// J or higher; rankOrder["J"] == 9
			if n == 2 && v >= 9 {
				return TierJacksOrBetter
			}
		}
	}
	return TierNothing
}
