package ledger

import "errors"

var (
	// ErrAccountNotFound is returned when an account or transfer counterpart
	// does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive is returned when a financial operation targets a
	// deactivated account.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrInvalidAmount is returned when an operation amount is zero, negative
	// or otherwise malformed.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidTransfer is returned when the source and destination of a
	// transfer are the same account.
	ErrInvalidTransfer = errors.New("cannot transfer to same account")

	// ErrInsufficientFunds is returned when a withdrawal or transfer would
	// drive the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConflict is returned on transient storage contention. The caller may
	// retry; the engine never retries withdrawals or transfers itself.
	ErrConflict = errors.New("storage conflict")

	// ErrTimeout is returned when the storage layer did not answer within the
	// operation deadline.
	ErrTimeout = errors.New("operation timed out")
)
