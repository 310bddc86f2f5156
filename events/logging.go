package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// SubscribeLogging attaches structured log handlers for every event type
func SubscribeLogging(bus *Bus) {
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		e, ok := event.(BalanceChangeEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"accountID":    e.AccountID,
			"oldBalance":   e.OldBalance,
			"newBalance":   e.NewBalance,
			"changeAmount": e.ChangeAmount,
			"reason":       e.Reason,
		}).Info("Balance changed")
	})

	bus.Subscribe(EventTypeGamePlayed, func(ctx context.Context, event Event) {
		e, ok := event.(GamePlayedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"accountID": e.AccountID,
			"gameType":  e.GameType,
			"betAmount": e.BetAmount,
			"result":    e.Result,
			"payout":    e.Payout,
		}).Info("Game played")
	})

	bus.Subscribe(EventTypeAccountCreated, func(ctx context.Context, event Event) {
		e, ok := event.(AccountCreatedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"accountID":      e.AccountID,
			"username":       e.Username,
			"initialBalance": e.InitialBalance,
		}).Info("Account created")
	})

	bus.Subscribe(EventTypeCoinRequestResolved, func(ctx context.Context, event Event) {
		e, ok := event.(CoinRequestResolvedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"requestID": e.RequestID,
			"accountID": e.AccountID,
			"amount":    e.Amount,
			"approved":  e.Approved,
		}).Info("Coin request resolved")
	})
}
