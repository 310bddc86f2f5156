package games

import (
	"fmt"

	"casino/models"
)

// DiceResolver resolves bets on the total of two fair dice
type DiceResolver struct{}

func (r *DiceResolver) GameType() models.GameType {
	return models.GameTypeDice
}

func (r *DiceResolver) ValidateParams(req *models.WagerRequest) error {
	switch req.DiceBetType {
	case models.DiceBetExact:
		if req.DiceTarget < 2 || req.DiceTarget > 12 {
			return fmt.Errorf("%w: exact total must be 2-12, got %d", models.ErrInvalidParameters, req.DiceTarget)
		}
	case models.DiceBetOver, models.DiceBetUnder:
		// Pivots at the extremes would make the bet unwinnable or a
		// guaranteed win; both are rejected.
		if req.DiceTarget < 3 || req.DiceTarget > 11 {
			return fmt.Errorf("%w: over/under pivot must be 3-11, got %d", models.ErrInvalidParameters, req.DiceTarget)
		}
	case models.DiceBetOdd, models.DiceBetEven, models.DiceBetSeven:
		// No extra parameters.
	default:
		return fmt.Errorf("%w: unknown dice bet type %q", models.ErrInvalidParameters, req.DiceBetType)
	}
	return nil
}

func (r *DiceResolver) Resolve(req *models.WagerRequest, src Source) models.Outcome {
	die1 := src.Intn(6) + 1
	die2 := src.Intn(6) + 1
	total := die1 + die2

	won := diceWins(req.DiceBetType, req.DiceTarget, total)

	var multiplier float64
	if won {
		p := diceWinProbability(req.DiceBetType, req.DiceTarget)
		multiplier = (1 / p) * (1 - DiceEdge)
	}

	return models.Outcome{
		Won:        won,
		Multiplier: multiplier,
		Detail: map[string]any{
			"die1":     die1,
			"die2":     die2,
			"total":    total,
			"bet_type": string(req.DiceBetType),
			"target":   req.DiceTarget,
		},
	}
}

func diceWins(betType models.DiceBetType, target, total int) bool {
	switch betType {
	case models.DiceBetExact:
		return total == target
	case models.DiceBetOver:
		return total > target
	case models.DiceBetUnder:
		return total < target
	case models.DiceBetOdd:
		return total%2 == 1
	case models.DiceBetEven:
		return total%2 == 0
	case models.DiceBetSeven:
		return total == 7
	}
	return false
}

// waysToRoll[t] is the number of (die1, die2) pairs totalling t
var waysToRoll = map[int]int{
	2: 1, 3: 2, 4: 3, 5: 4, 6: 5, 7: 6, 8: 5, 9: 4, 10: 3, 11: 2, 12: 1,
}

// diceWinProbability is the fair win probability of a validated dice bet
func diceWinProbability(betType models.DiceBetType, target int) float64 {
	switch betType {
	case models.DiceBetExact:
		return float64(waysToRoll[target]) / 36
	case models.DiceBetOver:
		ways := 0
		for t := target + 1; t <= 12; t++ {
			ways += waysToRoll[t]
		}
		return float64(ways) / 36
	case models.DiceBetUnder:
		ways := 0
		for t := 2; t < target; t++ {
			ways += waysToRoll[t]
		}
		return float64(ways) / 36
	case models.DiceBetOdd, models.DiceBetEven:
		return 0.5
	case models.DiceBetSeven:
		return float64(waysToRoll[7]) / 36
	}
	return 0
}
