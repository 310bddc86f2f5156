package repository

import (
	"context"
	"fmt"

	"casino/database"
	"casino/models"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the service.AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

const accountColumns = `id, username, balance, total_wagered, total_won, games_played, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Balance,
		&account.TotalWagered,
		&account.TotalWon,
		&account.GamesPlayed,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, accountID int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}
	return account, nil
}

// GetByUsername retrieves an account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get account %q: %w", username, err)
	}
	return account, nil
}

// Create creates a new account with the initial balance
func (r *AccountRepository) Create(ctx context.Context, username string, initialBalance int64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (username, balance)
		VALUES ($1, $2)
		RETURNING ` + accountColumns

	account, err := scanAccount(r.q.QueryRow(ctx, query, username, initialBalance))
	if err != nil {
		return nil, fmt.Errorf("failed to create account %q: %w", username, err)
	}
	return account, nil
}

// ApplyWager settles one wager in a single guarded update: the bet is
// debited, the payout credited, and the lifetime counters bumped, but only
// if the balance still covers the bet. Returns nil when it does not.
func (r *AccountRepository) ApplyWager(ctx context.Context, accountID, betAmount, payout int64) (*models.Account, error) {
	if betAmount <= 0 {
		return nil, fmt.Errorf("bet amount must be positive")
	}
	if payout < 0 {
		return nil, fmt.Errorf("payout must not be negative")
	}

	query := `
		UPDATE accounts
		SET balance = balance - $1 + $2,
		    total_wagered = total_wagered + $1,
		    total_won = total_won + $2,
		    games_played = games_played + 1,
		    updated_at = NOW()
		WHERE id = $3 AND balance >= $1
		RETURNING ` + accountColumns

	account, err := scanAccount(r.q.QueryRow(ctx, query, betAmount, payout, accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to apply wager for account %d: %w", accountID, err)
	}
	return account, nil
}

// Credit adds amount to the account balance
func (r *AccountRepository) Credit(ctx context.Context, accountID, amount int64) (*models.Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + accountColumns

	account, err := scanAccount(r.q.QueryRow(ctx, query, amount, accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to credit account %d: %w", accountID, err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %d not found", accountID)
	}
	return account, nil
}
