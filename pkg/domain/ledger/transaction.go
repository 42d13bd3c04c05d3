package ledger

import (
	"time"

	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/google/uuid"
)

// TransactionKind identifies the operation that produced a record.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindTransfer   TransactionKind = "transfer"
)

// Transaction is the immutable record of one successful balance mutation.
// Records are append-only: once created they are never updated or deleted.
//
// A transfer produces exactly one record, owned by the source account with
// the destination recorded as TargetAccountID.
type Transaction struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Kind      TransactionKind
	Amount    money.Money

	// TargetAccountID is the transfer counterpart; nil for deposits and
	// withdrawals.
	TargetAccountID *uuid.UUID

	// Sequence is assigned by the store on append and is strictly increasing.
	// It is the stable tie-break key when creation timestamps coincide.
	Sequence  int64
	CreatedAt time.Time
}

// NewDeposit creates the record for a successful deposit.
func NewDeposit(accountID uuid.UUID, amount money.Money) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Kind:      KindDeposit,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// NewWithdrawal creates the record for a successful withdrawal.
func NewWithdrawal(accountID uuid.UUID, amount money.Money) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Kind:      KindWithdrawal,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTransfer creates the single record for a successful transfer, attributed
// to the source account.
func NewTransfer(fromAccountID, toAccountID uuid.UUID, amount money.Money) *Transaction {
	target := toAccountID
	return &Transaction{
		ID:              uuid.New(),
		AccountID:       fromAccountID,
		Kind:            KindTransfer,
		Amount:          amount,
		TargetAccountID: &target,
		CreatedAt:       time.Now().UTC(),
	}
}

// NewTransactionFromData hydrates a Transaction from raw storage data. It
// bypasses invariants and should only be used by repositories and test
// fixtures.
func NewTransactionFromData(
	id, accountID uuid.UUID,
	kind TransactionKind,
	amount int64,
	targetAccountID *uuid.UUID,
	sequence int64,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		ID:              id,
		AccountID:       accountID,
		Kind:            kind,
		Amount:          money.FromMinorUnits(amount),
		TargetAccountID: targetAccountID,
		Sequence:        sequence,
		CreatedAt:       createdAt,
	}
}
