package models

import (
	"time"

	"github.com/google/uuid"
)

// GameResult is the settled result recorded in history
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLoss GameResult = "loss"
	GameResultPush GameResult = "push"
)

// HistoryRecord is an immutable, append-only record of one settled wager.
// It references the account by id and snapshots everything else, so it
// stays valid however the account changes afterwards.
type HistoryRecord struct {
	ID            uuid.UUID      `db:"id"`
	AccountID     int64          `db:"account_id"`
	GameType      GameType       `db:"game_type"`
	BetAmount     int64          `db:"bet_amount"`
	Result        GameResult     `db:"result"`
	Payout        int64          `db:"payout"`
	BalanceBefore int64          `db:"balance_before"`
	BalanceAfter  int64          `db:"balance_after"`
	Detail        map[string]any `db:"detail"`
	CreatedAt     time.Time      `db:"created_at"`
}
