package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"casino/events"
	"casino/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"casino/games"
)

// newPlayFixture wires a play service against fresh mocks. The fixed
// source rolls die1=1, die2=2 (total 3, odd).
func newPlayFixture(src games.Source) (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockAccountRepository, *MockHistoryRepository, PlayService) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockHistoryRepo := new(MockHistoryRepository)
	mockCoinRepo := new(MockCoinRequestRepository)

	mockUoW.SetRepositories(mockAccountRepo, mockHistoryRepo, mockCoinRepo)

	svc := NewPlayService(mockFactory, src, NewAccountLocks(time.Second), PlayConfig{
		MinBet: 1,
	})
	return mockFactory, mockUoW, mockAccountRepo, mockHistoryRepo, svc
}

func TestPlayService_PlayGame_Win(t *testing.T) {
	ctx := context.Background()

	// die1=1, die2=2, total 3: an odd bet wins at p=0.5
	src := games.NewFixedSource(0.0, 0.2)
	mockFactory, mockUoW, mockAccountRepo, mockHistoryRepo, svc := newPlayFixture(src)

	account := &models.Account{ID: 1, Username: "alice", Balance: 1000}
	updated := &models.Account{
		ID: 1, Username: "alice", Balance: 1086,
		TotalWagered: 100, TotalWon: 186, GamesPlayed: 1,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(account, nil)
	// fair 2x scaled by the 7% house edge: floor(100 * 1.86) = 186
	mockAccountRepo.On("ApplyWager", ctx, int64(1), int64(100), int64(186)).Return(updated, nil)

	mockHistoryRepo.On("Append", ctx, mock.MatchedBy(func(r *models.HistoryRecord) bool {
		return r.AccountID == 1 &&
			r.GameType == models.GameTypeDice &&
			r.BetAmount == 100 &&
			r.Result == models.GameResultWin &&
			r.Payout == 186 &&
			r.BalanceBefore == 1000 &&
			r.BalanceAfter == 1086
	})).Return(nil)

	result, err := svc.PlayGame(ctx, 1, &models.WagerRequest{
		GameType:    models.GameTypeDice,
		BetAmount:   100,
		DiceBetType: models.DiceBetOdd,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Outcome.Won)
	assert.Equal(t, int64(186), result.Payout)
	assert.Equal(t, int64(1086), result.NewBalance)
	assert.NotZero(t, result.Record.ID)

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 2)
	played, ok := published[0].(events.GamePlayedEvent)
	require.True(t, ok)
	assert.Equal(t, models.GameResultWin, played.Result)
	change, ok := published[1].(events.BalanceChangeEvent)
	require.True(t, ok)
	assert.Equal(t, int64(86), change.ChangeAmount)

	mockFactory.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestPlayService_PlayGame_Loss(t *testing.T) {
	ctx := context.Background()

	// total 3 again, but the bet is on even
	src := games.NewFixedSource(0.0, 0.2)
	mockFactory, mockUoW, mockAccountRepo, mockHistoryRepo, svc := newPlayFixture(src)

	account := &models.Account{ID: 1, Username: "alice", Balance: 1000}
	updated := &models.Account{
		ID: 1, Username: "alice", Balance: 900,
		TotalWagered: 100, GamesPlayed: 1,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(account, nil)
	mockAccountRepo.On("ApplyWager", ctx, int64(1), int64(100), int64(0)).Return(updated, nil)

	mockHistoryRepo.On("Append", ctx, mock.MatchedBy(func(r *models.HistoryRecord) bool {
		return r.Result == models.GameResultLoss && r.Payout == 0 && r.BalanceAfter == 900
	})).Return(nil)

	result, err := svc.PlayGame(ctx, 1, &models.WagerRequest{
		GameType:    models.GameTypeDice,
		BetAmount:   100,
		DiceBetType: models.DiceBetEven,
	})

	require.NoError(t, err)
	assert.False(t, result.Outcome.Won)
	assert.Equal(t, int64(0), result.Payout)
	assert.Equal(t, int64(900), result.NewBalance)

	mockAccountRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestPlayService_PlayGame_InsufficientFunds(t *testing.T) {
	ctx := context.Background()

	src := games.NewFixedSource(0.0, 0.2)
	mockFactory, mockUoW, mockAccountRepo, mockHistoryRepo, svc := newPlayFixture(src)

	account := &models.Account{ID: 1, Username: "alice", Balance: 50}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(account, nil)

	result, err := svc.PlayGame(ctx, 1, &models.WagerRequest{
		GameType:    models.GameTypeDice,
		BetAmount:   100,
		DiceBetType: models.DiceBetOdd,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	// A failed wager leaves no trace
	mockAccountRepo.AssertNotCalled(t, "ApplyWager", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockHistoryRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestPlayService_PlayGame_GuardedUpdateLosesRace(t *testing.T) {
	ctx := context.Background()

	src := games.NewFixedSource(0.0, 0.2)
	mockFactory, mockUoW, mockAccountRepo, mockHistoryRepo, svc := newPlayFixture(src)

	account := &models.Account{ID: 1, Username: "alice", Balance: 1000}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(account, nil)
	// The balance moved between validation and settlement
	mockAccountRepo.On("ApplyWager", ctx, int64(1), int64(100), mock.AnythingOfType("int64")).Return(nil, nil)

	result, err := svc.PlayGame(ctx, 1, &models.WagerRequest{
		GameType:    models.GameTypeDice,
		BetAmount:   100,
		DiceBetType: models.DiceBetOdd,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	mockHistoryRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestPlayService_PlayGame_AppendFailureRollsBack(t *testing.T) {
	ctx := context.Background()

	src := games.NewFixedSource(0.0, 0.2)
	mockFactory, mockUoW, mockAccountRepo, mockHistoryRepo, svc := newPlayFixture(src)

	account := &models.Account{ID: 1, Username: "alice", Balance: 1000}
	updated := &models.Account{ID: 1, Username: "alice", Balance: 1086}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(account, nil)
	mockAccountRepo.On("ApplyWager", ctx, int64(1), int64(100), int64(186)).Return(updated, nil)
	mockHistoryRepo.On("Append", ctx, mock.Anything).Return(errors.New("insert failed"))

	result, err := svc.PlayGame(ctx, 1, &models.WagerRequest{
		GameType:    models.GameTypeDice,
		BetAmount:   100,
		DiceBetType: models.DiceBetOdd,
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	mockUoW.AssertCalled(t, "Rollback")
}

func TestPlayService_PlayGame_UnknownGameType(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewPlayService(mockFactory, games.NewFixedSource(0.5), NewAccountLocks(time.Second), PlayConfig{MinBet: 1})

	result, err := svc.PlayGame(ctx, 1, &models.WagerRequest{
		GameType:  models.GameType("slots"),
		BetAmount: 100,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrInvalidParameters)
	// Nothing touches storage before the game type resolves
	mockFactory.AssertNotCalled(t, "Create")
}

func TestPlayService_PlayGame_BetBelowMinimum(t *testing.T) {
	ctx := context.Background()

	src := games.NewFixedSource(0.0, 0.2)
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockUoW.SetRepositories(mockAccountRepo, new(MockHistoryRepository), new(MockCoinRequestRepository))

	svc := NewPlayService(mockFactory, src, NewAccountLocks(time.Second), PlayConfig{MinBet: 10})

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(&models.Account{ID: 1, Balance: 1000}, nil)

	_, err := svc.PlayGame(ctx, 1, &models.WagerRequest{
		GameType:    models.GameTypeDice,
		BetAmount:   5,
		DiceBetType: models.DiceBetOdd,
	})

	assert.ErrorIs(t, err, models.ErrInvalidParameters)
}

func TestPlayService_PlayGame_BusyAccount(t *testing.T) {
	ctx := context.Background()

	src := games.NewFixedSource(0.0, 0.2)
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockUoW.SetRepositories(mockAccountRepo, new(MockHistoryRepository), new(MockCoinRequestRepository))

	locks := NewAccountLocks(20 * time.Millisecond)
	svc := NewPlayService(mockFactory, src, locks, PlayConfig{MinBet: 1})

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(&models.Account{ID: 1, Balance: 1000}, nil)

	// Another settlement holds the account
	release, err := locks.inner.acquire(ctx, 1)
	require.NoError(t, err)
	defer release()

	result, err := svc.PlayGame(ctx, 1, &models.WagerRequest{
		GameType:    models.GameTypeDice,
		BetAmount:   100,
		DiceBetType: models.DiceBetOdd,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrBusy)
}

func TestPlayService_ListHistory_DefaultLimit(t *testing.T) {
	ctx := context.Background()

	src := games.NewFixedSource(0.5)
	mockFactory, mockUoW, _, mockHistoryRepo, svc := newPlayFixture(src)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockHistoryRepo.On("ListByAccount", ctx, int64(1), 50).Return([]*models.HistoryRecord{}, nil)

	records, err := svc.ListHistory(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
	mockHistoryRepo.AssertExpectations(t)
}
