package games

import (
	"fmt"

	"casino/models"
)

// Resolver maps a validated wager request and a draw sequence to an
// outcome. Resolvers are pure: given identical draws they produce
// identical outcomes, and they never touch balances or storage.
type Resolver interface {
	// GameType returns the game this resolver handles
	GameType() models.GameType

	// ValidateParams checks the game-specific request parameters
	ValidateParams(req *models.WagerRequest) error

	// Resolve computes the outcome from the request and random draws
	Resolve(req *models.WagerRequest, src Source) models.Outcome
}

// House edge per game: the fraction shaved off the fair total-return
// multiplier on winning outcomes. Pushes are exempt.
const (
	BlackjackEdge   = 0.07
	PokerEdge       = 0.08
	RouletteEdge    = 0.11
	DiceEdge        = 0.07
	MinesweeperEdge = 0.08
)

// registry is the closed set of game resolvers
var registry = map[models.GameType]Resolver{
	models.GameTypeBlackjack:   &BlackjackResolver{},
	models.GameTypePoker:       &PokerResolver{},
	models.GameTypeRoulette:    &RouletteResolver{},
	models.GameTypeDice:        &DiceResolver{},
	models.GameTypeMinesweeper: &MinesweeperResolver{},
}

// Get returns the resolver for a game type
func Get(gameType models.GameType) (Resolver, error) {
	r, ok := registry[gameType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown game type %q", models.ErrInvalidParameters, gameType)
	}
	return r, nil
}
