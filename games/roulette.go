package games

import (
	"fmt"

	"casino/models"
)

// RouletteResolver resolves bets on a European wheel (pockets 0-36)
type RouletteResolver struct{}

const roulettePockets = 37

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

func (r *RouletteResolver) GameType() models.GameType {
	return models.GameTypeRoulette
}

func (r *RouletteResolver) ValidateParams(req *models.WagerRequest) error {
	switch req.RouletteBetType {
	case models.RouletteBetStraight:
		if req.RouletteNumber < 0 || req.RouletteNumber > 36 {
			return fmt.Errorf("%w: straight number must be 0-36, got %d", models.ErrInvalidParameters, req.RouletteNumber)
		}
	case models.RouletteBetColor:
		if req.RouletteChoice != "red" && req.RouletteChoice != "black" {
			return fmt.Errorf("%w: color must be red or black, got %q", models.ErrInvalidParameters, req.RouletteChoice)
		}
	case models.RouletteBetParity:
		if req.RouletteChoice != "odd" && req.RouletteChoice != "even" {
			return fmt.Errorf("%w: parity must be odd or even, got %q", models.ErrInvalidParameters, req.RouletteChoice)
		}
	case models.RouletteBetDozen:
		if req.RouletteDozen < 1 || req.RouletteDozen > 3 {
			return fmt.Errorf("%w: dozen must be 1-3, got %d", models.ErrInvalidParameters, req.RouletteDozen)
		}
	default:
		return fmt.Errorf("%w: unknown roulette bet type %q", models.ErrInvalidParameters, req.RouletteBetType)
	}
	return nil
}

func (r *RouletteResolver) Resolve(req *models.WagerRequest, src Source) models.Outcome {
	pocket := src.Intn(roulettePockets)

	won, ways := rouletteWins(req, pocket)

	var multiplier float64
	if won {
		p := float64(ways) / roulettePockets
		multiplier = (1 / p) * (1 - RouletteEdge)
	}

	color := "green"
	if redNumbers[pocket] {
		color = "red"
	} else if pocket != 0 {
		color = "black"
	}

	return models.Outcome{
		Won:        won,
		Multiplier: multiplier,
		Detail: map[string]any{
			"pocket":   pocket,
			"color":    color,
			"bet_type": string(req.RouletteBetType),
		},
	}
}

// rouletteWins reports whether the bet covers the pocket and how many
// pockets the bet covers. Zero defeats every non-straight bet.
func rouletteWins(req *models.WagerRequest, pocket int) (bool, int) {
	switch req.RouletteBetType {
	case models.RouletteBetStraight:
		return pocket == req.RouletteNumber, 1
	case models.RouletteBetColor:
		if pocket == 0 {
			return false, 18
		}
		isRed := redNumbers[pocket]
		return (req.RouletteChoice == "red") == isRed, 18
	case models.RouletteBetParity:
		if pocket == 0 {
			return false, 18
		}
		isOdd := pocket%2 == 1
		return (req.RouletteChoice == "odd") == isOdd, 18
	case models.RouletteBetDozen:
		low := (req.RouletteDozen-1)*12 + 1
		return pocket >= low && pocket < low+12, 12
	}
	return false, 0
}
