package service

import (
	"context"
	"fmt"

	"casino/events"
	"casino/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type coinRequestService struct {
	uowFactory UnitOfWorkFactory
	locks      *accountLocks
}

// NewCoinRequestService creates the coin request ledger. It shares the
// lock arena with the settlement engine, so an approval never interleaves
// with a wager on the same account.
func NewCoinRequestService(uowFactory UnitOfWorkFactory, locks *AccountLocks) CoinRequestService {
	return &coinRequestService{
		uowFactory: uowFactory,
		locks:      locks.inner,
	}
}

func (s *coinRequestService) RequestCoins(ctx context.Context, accountID int64, amount int64, reason string) (*models.CoinRequest, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", models.ErrInvalidParameters)
	}
	if amount == 0 {
		amount = models.DefaultCoinRequestAmount
	}

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

	pending, err := uow.CoinRequestRepository().HasPending(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return nil, fmt.Errorf("%w: account %d already has a pending coin request", models.ErrInvalidState, accountID)
	}

	request := &models.CoinRequest{
		ID:        uuid.New(),
		AccountID: accountID,
		Amount:    amount,
		Reason:    reason,
		Status:    models.CoinRequestPending,
	}
	if err := uow.CoinRequestRepository().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create coin request: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return request, nil
}

func (s *coinRequestService) Approve(ctx context.Context, id uuid.UUID, reviewedBy string) (*models.Account, error) {
	// Find the target account first so the right lock can be taken.
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.CoinRequestPending {
		return nil, fmt.Errorf("%w: coin request %s is already %s", models.ErrInvalidState, id, request.Status)
	}

	release, err := s.locks.acquire(ctx, request.AccountID)
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// The status transition is guarded: if another admin reviewed the
	// request between the read above and here, this returns nil.
	reviewed, err := uow.CoinRequestRepository().MarkReviewed(ctx, id, models.CoinRequestApproved, reviewedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to approve coin request: %w", err)
	}
	if reviewed == nil {
		return nil, fmt.Errorf("%w: coin request %s is no longer pending", models.ErrInvalidState, id)
	}

	account, err := uow.AccountRepository().Credit(ctx, request.AccountID, request.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to credit account %d: %w", request.AccountID, err)
	}

	uow.EventBus().Publish(events.CoinRequestResolvedEvent{
		RequestID: id.String(),
		AccountID: request.AccountID,
		Amount:    request.Amount,
		Approved:  true,
	})
	uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:    request.AccountID,
		OldBalance:   account.Balance - request.Amount,
		NewBalance:   account.Balance,
		ChangeAmount: request.Amount,
		Reason:       "coin_request",
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"requestId":  id,
		"accountId":  request.AccountID,
		"amount":     request.Amount,
		"reviewedBy": reviewedBy,
	}).Info("Coin request approved")

	return account, nil
}

func (s *coinRequestService) Reject(ctx context.Context, id uuid.UUID, reviewedBy string) (*models.CoinRequest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.CoinRequestRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get coin request: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: coin request %s", models.ErrNotFound, id)
	}

	reviewed, err := uow.CoinRequestRepository().MarkReviewed(ctx, id, models.CoinRequestRejected, reviewedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to reject coin request: %w", err)
	}
	if reviewed == nil {
		return nil, fmt.Errorf("%w: coin request %s is already %s", models.ErrInvalidState, id, existing.Status)
	}

	uow.EventBus().Publish(events.CoinRequestResolvedEvent{
		RequestID: id.String(),
		AccountID: reviewed.AccountID,
		Amount:    reviewed.Amount,
		Approved:  false,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"requestId":  id,
		"accountId":  reviewed.AccountID,
		"reviewedBy": reviewedBy,
	}).Info("Coin request rejected")

	return reviewed, nil
}

func (s *coinRequestService) ListPending(ctx context.Context) ([]*models.CoinRequest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	requests, err := uow.CoinRequestRepository().ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending coin requests: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return requests, nil
}

func (s *coinRequestService) ListByAccount(ctx context.Context, accountID int64) ([]*models.CoinRequest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	requests, err := uow.CoinRequestRepository().ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coin requests: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return requests, nil
}

func (s *coinRequestService) getRequest(ctx context.Context, id uuid.UUID) (*models.CoinRequest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	request, err := uow.CoinRequestRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get coin request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("%w: coin request %s", models.ErrNotFound, id)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return request, nil
}
