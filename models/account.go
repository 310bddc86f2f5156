package models

import (
	"time"
)

// Account represents a player account with a coin balance
type Account struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Balance      int64     `db:"balance"`
	TotalWagered int64     `db:"total_wagered"`
	TotalWon     int64     `db:"total_won"`
	GamesPlayed  int64     `db:"games_played"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// IsBankrupt reports whether the account has run out of coins
func (a *Account) IsBankrupt() bool {
	return a.Balance <= 0
}

// AccountStats summarizes an account's lifetime play
type AccountStats struct {
	AccountID    int64
	Balance      int64
	TotalWagered int64
	TotalWon     int64
	GamesPlayed  int64
}
