package models

// GameType identifies one of the supported games
type GameType string

const (
	GameTypeBlackjack   GameType = "blackjack"
	GameTypePoker       GameType = "poker"
	GameTypeRoulette    GameType = "roulette"
	GameTypeDice        GameType = "dice"
	GameTypeMinesweeper GameType = "minesweeper"
)

// AllGameTypes lists every supported game
var AllGameTypes = []GameType{
	GameTypeBlackjack,
	GameTypePoker,
	GameTypeRoulette,
	GameTypeDice,
	GameTypeMinesweeper,
}

// WagerRequest describes a single bet. It is ephemeral and never persisted;
// only the settled HistoryRecord survives.
type WagerRequest struct {
	GameType  GameType
	BetAmount int64

	// Dice parameters
	DiceBetType DiceBetType
	DiceTarget  int

	// Roulette parameters
	RouletteBetType RouletteBetType
	RouletteNumber  int    // straight bets
	RouletteChoice  string // "red"/"black", "odd"/"even"
	RouletteDozen   int    // 1-3

	// Minesweeper parameters
	GridSize int
	Mines    int
	Reveals  int
}

// DiceBetType enumerates the dice bet categories
type DiceBetType string

const (
	DiceBetExact DiceBetType = "exact"
	DiceBetOver  DiceBetType = "over"
	DiceBetUnder DiceBetType = "under"
	DiceBetOdd   DiceBetType = "odd"
	DiceBetEven  DiceBetType = "even"
	DiceBetSeven DiceBetType = "seven"
)

// RouletteBetType enumerates the roulette bet categories
type RouletteBetType string

const (
	RouletteBetStraight RouletteBetType = "straight"
	RouletteBetColor    RouletteBetType = "color"
	RouletteBetParity   RouletteBetType = "parity"
	RouletteBetDozen    RouletteBetType = "dozen"
)

// Outcome is the result of resolving a WagerRequest against a draw sequence.
// Multiplier is the total-return multiplier on the bet: 0 for a loss,
// exactly 1 for a push, and the edge-adjusted fair multiplier for a win.
type Outcome struct {
	Won        bool
	Push       bool
	Multiplier float64
	Detail     map[string]any
}

// PlayResult is returned to the caller after a wager has settled
type PlayResult struct {
	Outcome    Outcome
	BetAmount  int64
	Payout     int64
	NewBalance int64
	Record     *HistoryRecord
}
