package models

import "errors"

// Engine error taxonomy. Services wrap these with context via %w so
// callers can classify with errors.Is.
var (
	// ErrInvalidParameters rejects malformed or out-of-range bet input
	// before any state change.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInsufficientFunds rejects a bet exceeding the current balance.
	// Checked both before resolution and again under the account lock.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidState rejects an operation against an entity that is not
	// in the required state, e.g. re-approving a reviewed coin request.
	ErrInvalidState = errors.New("invalid state")

	// ErrBusy reports that the per-account lock could not be acquired in
	// time. No side effect occurred; the caller may retry.
	ErrBusy = errors.New("account busy")

	// ErrNotFound reports a missing account or coin request.
	ErrNotFound = errors.New("not found")
)
