package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"casino/events"
	"casino/games"
	"casino/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// defaultHistoryLimit caps history listings when the caller asks for none
const defaultHistoryLimit = 50

// PlayConfig carries the tunables of the settlement engine
type PlayConfig struct {
	MinBet int64
	MaxBet int64 // 0 = no fixed cap beyond the balance
}

type playService struct {
	uowFactory UnitOfWorkFactory
	src        games.Source
	validator  *wagerValidator
	locks      *accountLocks
}

// NewPlayService creates the settlement engine. The locks argument is
// shared with the coin request service so wagers and coin grants on the
// same account serialize against each other.
func NewPlayService(uowFactory UnitOfWorkFactory, src games.Source, locks *AccountLocks, cfg PlayConfig) PlayService {
	return &playService{
		uowFactory: uowFactory,
		src:        src,
		validator:  newWagerValidator(cfg.MinBet, cfg.MaxBet),
		locks:      locks.inner,
	}
}

func (s *playService) PlayGame(ctx context.Context, accountID int64, req *models.WagerRequest) (*models.PlayResult, error) {
	resolver, err := games.Get(req.GameType)
	if err != nil {
		return nil, err
	}

	// Validate against a fresh snapshot before resolving anything.
	account, err := s.snapshotAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.validate(account, req, resolver); err != nil {
		return nil, err
	}

	// Resolve the outcome. Pure computation; nothing is committed yet, so
	// an error past this point costs the player nothing.
	outcome := resolver.Resolve(req, s.src)
	payout := int64(math.Floor(float64(req.BetAmount) * outcome.Multiplier))

	result := models.GameResultLoss
	switch {
	case outcome.Push:
		result = models.GameResultPush
	case outcome.Won:
		result = models.GameResultWin
	}

	// Settle under the account lock: re-verify funds, mutate the balance,
	// and append history as one atomic unit.
	release, err := s.locks.acquire(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	before, err := uow.AccountRepository().GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if before == nil {
		return nil, fmt.Errorf("%w: account %d", models.ErrNotFound, accountID)
	}

	updated, err := uow.AccountRepository().ApplyWager(ctx, accountID, req.BetAmount, payout)
	if err != nil {
		return nil, fmt.Errorf("failed to apply wager: %w", err)
	}
	if updated == nil {
		// The guarded update found less balance than the validator saw.
		return nil, fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientFunds, before.Balance, req.BetAmount)
	}

	record := &models.HistoryRecord{
		ID:            uuid.New(),
		AccountID:     accountID,
		GameType:      req.GameType,
		BetAmount:     req.BetAmount,
		Result:        result,
		Payout:        payout,
		BalanceBefore: before.Balance,
		BalanceAfter:  updated.Balance,
		Detail:        outcome.Detail,
	}
	if err := uow.HistoryRepository().Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append history record: %w", err)
	}

	uow.EventBus().Publish(events.GamePlayedEvent{
		AccountID: accountID,
		GameType:  req.GameType,
		BetAmount: req.BetAmount,
		Result:    result,
		Payout:    payout,
	})
	uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:    accountID,
		OldBalance:   before.Balance,
		NewBalance:   updated.Balance,
		ChangeAmount: updated.Balance - before.Balance,
		Reason:       string(req.GameType),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"accountId": accountID,
		"gameType":  req.GameType,
		"betAmount": req.BetAmount,
		"result":    result,
		"payout":    payout,
	}).Info("Wager settled")

	return &models.PlayResult{
		Outcome:    outcome,
		BetAmount:  req.BetAmount,
		Payout:     payout,
		NewBalance: updated.Balance,
		Record:     record,
	}, nil
}

func (s *playService) ListHistory(ctx context.Context, accountID int64, limit int) ([]*models.HistoryRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.HistoryRepository().ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return records, nil
}

// snapshotAccount reads the account outside any lock
func (s *playService) snapshotAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", models.ErrNotFound, accountID)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

// AccountLocks is the shared per-account serialization arena. One instance
// is created at wiring time and handed to both ledgers.
type AccountLocks struct {
	inner *accountLocks
}

// NewAccountLocks creates the lock arena with the given acquisition bound
func NewAccountLocks(maxWait time.Duration) *AccountLocks {
	return &AccountLocks{inner: newAccountLocks(maxWait)}
}
