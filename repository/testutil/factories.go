package testutil

import (
	"time"

	"casino/models"

	"github.com/google/uuid"
)

// CreateTestAccount creates a test account with default values
func CreateTestAccount(username string) *models.Account {
	now := time.Now()
	return &models.Account{
		Username:  username,
		Balance:   1000,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestAccountWithBalance creates a test account with a specific balance
func CreateTestAccountWithBalance(username string, balance int64) *models.Account {
	account := CreateTestAccount(username)
	account.Balance = balance
	return account
}

// CreateTestHistoryRecord creates a history record for a settled wager
func CreateTestHistoryRecord(accountID int64, gameType models.GameType, bet, payout int64) *models.HistoryRecord {
	result := models.GameResultLoss
	if payout > bet {
		result = models.GameResultWin
	} else if payout == bet {
		result = models.GameResultPush
	}
	return &models.HistoryRecord{
		ID:            uuid.New(),
		AccountID:     accountID,
		GameType:      gameType,
		BetAmount:     bet,
		Result:        result,
		Payout:        payout,
		BalanceBefore: 1000,
		BalanceAfter:  1000 - bet + payout,
		Detail:        map[string]any{"test": true},
		CreatedAt:     time.Now(),
	}
}

// CreateTestCoinRequest creates a pending coin request
func CreateTestCoinRequest(accountID int64, amount int64) *models.CoinRequest {
	return &models.CoinRequest{
		ID:        uuid.New(),
		AccountID: accountID,
		Amount:    amount,
		Reason:    "test request",
		Status:    models.CoinRequestPending,
		CreatedAt: time.Now(),
	}
}
