package service

import (
	"fmt"

	"casino/games"
	"casino/models"
)

// wagerValidator checks a wager request against an account snapshot before
// any state changes. Pure: no side effects, no storage access. The balance
// check here is advisory under concurrency; settlement re-verifies it
// under the account lock.
type wagerValidator struct {
	minBet int64
	maxBet int64 // 0 means "limited only by the current balance"
}

func newWagerValidator(minBet, maxBet int64) *wagerValidator {
	if minBet < 1 {
		minBet = 1
	}
	return &wagerValidator{minBet: minBet, maxBet: maxBet}
}

// validate applies the rules in order: bet bounds, funds, game parameters
func (v *wagerValidator) validate(account *models.Account, req *models.WagerRequest, resolver games.Resolver) error {
	if req.BetAmount < v.minBet {
		return fmt.Errorf("%w: bet amount %d is below the minimum of %d", models.ErrInvalidParameters, req.BetAmount, v.minBet)
	}
	if v.maxBet > 0 && req.BetAmount > v.maxBet {
		return fmt.Errorf("%w: bet amount %d exceeds the maximum of %d", models.ErrInvalidParameters, req.BetAmount, v.maxBet)
	}
	if req.BetAmount > account.Balance {
		return fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientFunds, account.Balance, req.BetAmount)
	}
	if err := resolver.ValidateParams(req); err != nil {
		return err
	}
	return nil
}
