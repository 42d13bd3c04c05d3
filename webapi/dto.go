package webapi

import (
	"time"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
)

// CreateAccountRequest is the payload for opening a new account. Amounts and
// identifiers are validated here so the ledger engine only ever sees
// well-formed primitive requests.
type CreateAccountRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Type   string `json:"type" validate:"required,oneof=current savings"`
}

// DepositRequest is the payload for crediting an account. Amounts are in
// minor units (cents).
type DepositRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

// WithdrawRequest is the payload for debiting an account.
type WithdrawRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

// TransferRequest is the payload for moving funds between two accounts.
type TransferRequest struct {
	FromAccountID string `json:"from_account_id" validate:"required,uuid"`
	ToAccountID   string `json:"to_account_id" validate:"required,uuid"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
}

// AccountDTO is the API representation of an account snapshot.
type AccountDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionDTO is the API representation of a transaction record.
type TransactionDTO struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"account_id"`
	Kind            string    `json:"kind"`
	Amount          int64     `json:"amount"`
	TargetAccountID *string   `json:"target_account_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToAccountDTO maps a domain account to its API representation.
func ToAccountDTO(a *ledger.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		Number:    a.Number,
		Type:      string(a.Type),
		Status:    string(a.Status),
		Balance:   a.Balance.MinorUnits(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToTransactionDTO maps a domain transaction to its API representation.
func ToTransactionDTO(t *ledger.Transaction) *TransactionDTO {
	if t == nil {
		return nil
	}
	dto := &TransactionDTO{
		ID:        t.ID.String(),
		AccountID: t.AccountID.String(),
		Kind:      string(t.Kind),
		Amount:    t.Amount.MinorUnits(),
		CreatedAt: t.CreatedAt,
	}
	if t.TargetAccountID != nil {
		target := t.TargetAccountID.String()
		dto.TargetAccountID = &target
	}
	return dto
}

// ToTransactionDTOs maps a slice of records, always returning a non-nil
// slice so empty histories encode as [].
func ToTransactionDTOs(ts []*ledger.Transaction) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToTransactionDTO(t))
	}
	return out
}
