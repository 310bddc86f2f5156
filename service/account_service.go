package service

import (
	"context"
	"fmt"

	"casino/events"
	"casino/models"
)

type accountService struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory, startingBalance int64) AccountService {
	return &accountService{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

func (s *accountService) GetOrCreateAccount(ctx context.Context, username string) (*models.Account, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", models.ErrInvalidParameters)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account == nil {
		account, err = uow.AccountRepository().Create(ctx, username, s.startingBalance)
		if err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		uow.EventBus().Publish(events.AccountCreatedEvent{
			AccountID:      account.ID,
			Username:       username,
			InitialBalance: s.startingBalance,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID int64) (*models.Account, error) {
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

func (s *accountService) GetStats(ctx context.Context, accountID int64) (*models.AccountStats, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &models.AccountStats{
		AccountID:    account.ID,
		Balance:      account.Balance,
		TotalWagered: account.TotalWagered,
		TotalWon:     account.TotalWon,
		GamesPlayed:  account.GamesPlayed,
	}, nil
}
