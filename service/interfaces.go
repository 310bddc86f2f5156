package service

import (
	"context"

	"casino/events"
	"casino/models"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByID retrieves an account by its ID, or nil if absent
	GetByID(ctx context.Context, accountID int64) (*models.Account, error)

	// GetByUsername retrieves an account by username, or nil if absent
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// Create creates a new account with the initial balance
	Create(ctx context.Context, username string, initialBalance int64) (*models.Account, error)

	// ApplyWager atomically settles one wager: debits the bet, credits the
	// payout, and bumps the lifetime counters in a single guarded update.
	// Returns nil (no error) when the balance check fails.
	ApplyWager(ctx context.Context, accountID, betAmount, payout int64) (*models.Account, error)

	// Credit atomically adds amount to the account balance
	Credit(ctx context.Context, accountID, amount int64) (*models.Account, error)
}

// HistoryRepository defines the interface for the append-only wager history
type HistoryRepository interface {
	// Append inserts one history record; records are never updated
	Append(ctx context.Context, record *models.HistoryRecord) error

	// ListByAccount returns up to limit records, most recent first
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]*models.HistoryRecord, error)

	// SumsByAccount returns the total bet and payout across all of an
	// account's records, for reconciliation against the account counters
	SumsByAccount(ctx context.Context, accountID int64) (totalBet, totalPayout int64, err error)
}

// CoinRequestRepository defines the interface for coin request data access
type CoinRequestRepository interface {
	// Create inserts a new pending coin request
	Create(ctx context.Context, request *models.CoinRequest) error

	// GetByID retrieves a coin request by its ID, or nil if absent
	GetByID(ctx context.Context, id uuid.UUID) (*models.CoinRequest, error)

	// HasPending reports whether the account has a pending request
	HasPending(ctx context.Context, accountID int64) (bool, error)

	// MarkReviewed transitions a request out of pending. Returns nil when
	// the request exists but is no longer pending.
	MarkReviewed(ctx context.Context, id uuid.UUID, status models.CoinRequestStatus, reviewedBy string) (*models.CoinRequest, error)

	// ListByAccount returns the account's requests, most recent first
	ListByAccount(ctx context.Context, accountID int64) ([]*models.CoinRequest, error)

	// ListPending returns all pending requests, oldest first
	ListPending(ctx context.Context) ([]*models.CoinRequest, error)
}

// PlayService is the settlement engine's main entry point
type PlayService interface {
	// PlayGame validates the wager, resolves the outcome, and settles it
	// atomically against the account
	PlayGame(ctx context.Context, accountID int64, req *models.WagerRequest) (*models.PlayResult, error)

	// ListHistory returns the account's settled wagers, most recent first
	ListHistory(ctx context.Context, accountID int64, limit int) ([]*models.HistoryRecord, error)
}

// CoinRequestService manages the coin grant workflow
type CoinRequestService interface {
	// RequestCoins files a pending request for the account
	RequestCoins(ctx context.Context, accountID int64, amount int64, reason string) (*models.CoinRequest, error)

	// Approve grants a pending request and credits the account
	Approve(ctx context.Context, id uuid.UUID, reviewedBy string) (*models.Account, error)

	// Reject declines a pending request with no balance effect
	Reject(ctx context.Context, id uuid.UUID, reviewedBy string) (*models.CoinRequest, error)

	// ListPending returns all pending requests for admin review
	ListPending(ctx context.Context) ([]*models.CoinRequest, error)

	// ListByAccount returns the account's own requests
	ListByAccount(ctx context.Context, accountID int64) ([]*models.CoinRequest, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	// GetOrCreateAccount retrieves an account by username or creates one
	// with the configured starting balance
	GetOrCreateAccount(ctx context.Context, username string) (*models.Account, error)

	// GetAccount retrieves an account by ID
	GetAccount(ctx context.Context, accountID int64) (*models.Account, error)

	// GetStats returns the account's lifetime play statistics
	GetStats(ctx context.Context, accountID int64) (*models.AccountStats, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	HistoryRepository() HistoryRepository
	CoinRequestRepository() CoinRequestRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
