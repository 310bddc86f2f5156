package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"casino/database"
	"casino/models"
)

// HistoryRepository implements the service.HistoryRepository interface.
// History is append-only: there is no update or delete path.
type HistoryRepository struct {
	q queryable
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *database.DB) *HistoryRepository {
	return &HistoryRepository{q: db.Pool}
}

// newHistoryRepositoryWithTx creates a new history repository with a transaction
func newHistoryRepositoryWithTx(tx queryable) *HistoryRepository {
	return &HistoryRepository{q: tx}
}

// Append inserts one history record
func (r *HistoryRepository) Append(ctx context.Context, record *models.HistoryRecord) error {
	detailJSON, err := json.Marshal(record.Detail)
	if err != nil {
		return fmt.Errorf("failed to marshal history detail: %w", err)
	}

	query := `
		INSERT INTO history_records
		(id, account_id, game_type, bet_amount, result, payout, balance_before, balance_after, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err = r.q.QueryRow(ctx, query,
		record.ID,
		record.AccountID,
		record.GameType,
		record.BetAmount,
		record.Result,
		record.Payout,
		record.BalanceBefore,
		record.BalanceAfter,
		detailJSON,
	).Scan(&record.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append history record for account %d: %w", record.AccountID, err)
	}
	return nil
}

// ListByAccount returns up to limit records, most recent first
func (r *HistoryRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]*models.HistoryRecord, error) {
	query := `
		SELECT id, account_id, game_type, bet_amount, result, payout,
		       balance_before, balance_after, detail, created_at
		FROM history_records
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var records []*models.HistoryRecord
	for rows.Next() {
		var record models.HistoryRecord
		var detailJSON []byte

		err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&record.GameType,
			&record.BetAmount,
			&record.Result,
			&record.Payout,
			&record.BalanceBefore,
			&record.BalanceAfter,
			&detailJSON,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}

		if len(detailJSON) > 0 {
			if err := json.Unmarshal(detailJSON, &record.Detail); err != nil {
				return nil, fmt.Errorf("failed to unmarshal history detail: %w", err)
			}
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history records: %w", err)
	}
	return records, nil
}

// SumsByAccount totals bets and payouts across all records for an account
func (r *HistoryRepository) SumsByAccount(ctx context.Context, accountID int64) (int64, int64, error) {
	query := `
		SELECT COALESCE(SUM(bet_amount), 0), COALESCE(SUM(payout), 0)
		FROM history_records
		WHERE account_id = $1
	`

	var totalBet, totalPayout int64
	if err := r.q.QueryRow(ctx, query, accountID).Scan(&totalBet, &totalPayout); err != nil {
		return 0, 0, fmt.Errorf("failed to sum history for account %d: %w", accountID, err)
	}
	return totalBet, totalPayout, nil
}
