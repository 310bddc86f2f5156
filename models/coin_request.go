package models

import (
	"time"

	"github.com/google/uuid"
)

// CoinRequestStatus is the lifecycle state of a coin request.
// The only legal transitions are pending -> approved and pending -> rejected.
type CoinRequestStatus string

const (
	CoinRequestPending  CoinRequestStatus = "pending"
	CoinRequestApproved CoinRequestStatus = "approved"
	CoinRequestRejected CoinRequestStatus = "rejected"
)

// DefaultCoinRequestAmount is granted when a request does not name an amount
const DefaultCoinRequestAmount int64 = 1000

// CoinRequest is a player's plea for more coins, reviewed by an admin
type CoinRequest struct {
	ID         uuid.UUID         `db:"id"`
	AccountID  int64             `db:"account_id"`
	Amount     int64             `db:"amount"`
	Reason     string            `db:"reason"`
	Status     CoinRequestStatus `db:"status"`
	ReviewedBy *string           `db:"reviewed_by"`
	ReviewedAt *time.Time        `db:"reviewed_at"`
	CreatedAt  time.Time         `db:"created_at"`
}
