// Package repository defines the storage contracts of the ledger engine: the
// Account Store operations and the scoped atomic unit that composes them.
package repository

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	"github.com/google/uuid"
)

// AccountRepository owns the authoritative balance and status of every
// account.
type AccountRepository interface {
	// Get returns the account or ledger.ErrAccountNotFound.
	Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error)

	// Create stores a new account record.
	Create(ctx context.Context, a *ledger.Account) error

	// AdjustBalance applies delta (positive or negative, in minor units) to
	// the stored balance as a single atomic read-modify-write and returns the
	// updated account. It fails with ledger.ErrInsufficientFunds rather than
	// driving the balance below zero, ledger.ErrAccountInactive when the
	// account is deactivated, and ledger.ErrAccountNotFound when it does not
	// exist. On failure no part of the delta is applied.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) (*ledger.Account, error)

	// SetStatus updates the account status and returns the updated account or
	// ledger.ErrAccountNotFound.
	SetStatus(ctx context.Context, id uuid.UUID, status ledger.Status) (*ledger.Account, error)

	// ListByUser returns all accounts owned by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ledger.Account, error)
}

// TransactionRepository is the append-only log of transaction records.
type TransactionRepository interface {
	// Create durably appends a transaction record. The store assigns the
	// record's Sequence.
	Create(ctx context.Context, t *ledger.Transaction) error

	// ListByAccount returns the account's records newest first by creation
	// time, ties broken by Sequence descending. An account with no records
	// yields an empty slice.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Transaction, error)
}
