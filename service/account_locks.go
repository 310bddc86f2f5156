package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"casino/models"
)

// accountLocks serializes balance-mutating operations per account. Each
// account gets its own lock, so settlements against different accounts
// proceed in parallel while two operations on one account never overlap.
// Acquisition is bounded: a caller that cannot get the lock within the
// configured wait fails with ErrBusy and has caused no side effect.
type accountLocks struct {
	maxWait time.Duration
	locks   sync.Map // accountID -> chan struct{} with capacity 1
}

func newAccountLocks(maxWait time.Duration) *accountLocks {
	return &accountLocks{maxWait: maxWait}
}

// acquire takes the account's lock, returning a release function. Honors
// context cancellation while waiting; once acquired, the caller runs to
// completion.
func (l *accountLocks) acquire(ctx context.Context, accountID int64) (func(), error) {
	v, _ := l.locks.LoadOrStore(accountID, make(chan struct{}, 1))
	ch := v.(chan struct{})

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for account %d lock: %w", accountID, ctx.Err())
	case <-timer.C:
		return nil, fmt.Errorf("%w: account %d is settling another operation", models.ErrBusy, accountID)
	}
}
