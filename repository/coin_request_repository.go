package repository

import (
	"context"
	"fmt"

	"casino/database"
	"casino/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CoinRequestRepository implements the service.CoinRequestRepository interface
type CoinRequestRepository struct {
	q queryable
}

// NewCoinRequestRepository creates a new coin request repository
func NewCoinRequestRepository(db *database.DB) *CoinRequestRepository {
	return &CoinRequestRepository{q: db.Pool}
}

// newCoinRequestRepositoryWithTx creates a new coin request repository with a transaction
func newCoinRequestRepositoryWithTx(tx queryable) *CoinRequestRepository {
	return &CoinRequestRepository{q: tx}
}

const coinRequestColumns = `id, account_id, amount, reason, status, reviewed_by, reviewed_at, created_at`

func scanCoinRequest(row pgx.Row) (*models.CoinRequest, error) {
	var request models.CoinRequest
	err := row.Scan(
		&request.ID,
		&request.AccountID,
		&request.Amount,
		&request.Reason,
		&request.Status,
		&request.ReviewedBy,
		&request.ReviewedAt,
		&request.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Create inserts a new pending coin request
func (r *CoinRequestRepository) Create(ctx context.Context, request *models.CoinRequest) error {
	query := `
		INSERT INTO coin_requests (id, account_id, amount, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		request.ID,
		request.AccountID,
		request.Amount,
		request.Reason,
		request.Status,
	).Scan(&request.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create coin request for account %d: %w", request.AccountID, err)
	}
	return nil
}

// GetByID retrieves a coin request by its ID
func (r *CoinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CoinRequest, error) {
	query := `SELECT ` + coinRequestColumns + ` FROM coin_requests WHERE id = $1`

	request, err := scanCoinRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get coin request %s: %w", id, err)
	}
	return request, nil
}

// HasPending reports whether the account has a pending request
func (r *CoinRequestRepository) HasPending(ctx context.Context, accountID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM coin_requests WHERE account_id = $1 AND status = 'pending')`

	var exists bool
	if err := r.q.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending requests for account %d: %w", accountID, err)
	}
	return exists, nil
}

// MarkReviewed transitions a request out of pending. The WHERE clause
// enforces the one-way lifecycle: an already reviewed request matches no
// row and nil is returned.
func (r *CoinRequestRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status models.CoinRequestStatus, reviewedBy string) (*models.CoinRequest, error) {
	if status != models.CoinRequestApproved && status != models.CoinRequestRejected {
		return nil, fmt.Errorf("cannot transition to status %q", status)
	}

	query := `
		UPDATE coin_requests
		SET status = $1, reviewed_by = $2, reviewed_at = NOW()
		WHERE id = $3 AND status = 'pending'
		RETURNING ` + coinRequestColumns

	request, err := scanCoinRequest(r.q.QueryRow(ctx, query, status, reviewedBy, id))
	if err != nil {
		return nil, fmt.Errorf("failed to mark coin request %s reviewed: %w", id, err)
	}
	return request, nil
}

// ListByAccount returns the account's requests, most recent first
func (r *CoinRequestRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.CoinRequest, error) {
	query := `SELECT ` + coinRequestColumns + ` FROM coin_requests WHERE account_id = $1 ORDER BY created_at DESC`

	return r.list(ctx, query, accountID)
}

// ListPending returns all pending requests, oldest first
func (r *CoinRequestRepository) ListPending(ctx context.Context) ([]*models.CoinRequest, error) {
	query := `SELECT ` + coinRequestColumns + ` FROM coin_requests WHERE status = 'pending' ORDER BY created_at ASC`

	return r.list(ctx, query)
}

func (r *CoinRequestRepository) list(ctx context.Context, query string, args ...any) ([]*models.CoinRequest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list coin requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.CoinRequest
	for rows.Next() {
		var request models.CoinRequest
		err := rows.Scan(
			&request.ID,
			&request.AccountID,
			&request.Amount,
			&request.Reason,
			&request.Status,
			&request.ReviewedBy,
			&request.ReviewedAt,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coin request: %w", err)
		}
		requests = append(requests, &request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate coin requests: %w", err)
	}
	return requests, nil
}
