// Package ledger holds the domain entities of the ledger engine: accounts
// with a non-negative minor-unit balance, and the append-only transaction
// records produced by balance mutations.
package ledger

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/google/uuid"
)

// Status is the lifecycle state of an account. The only permitted transition
// is active to inactive; there is no reactivation.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// AccountType classifies an account.
type AccountType string

const (
	TypeCurrent AccountType = "current"
	TypeSavings AccountType = "savings"
)

// ValidAccountType reports whether t is a known account classification.
func ValidAccountType(t AccountType) bool {
	return t == TypeCurrent || t == TypeSavings
}

// Account represents a bank account owned by a user.
//
// Invariants:
//   - Balance is never negative, observable before and after every operation.
//   - Balance mutates only through ledger operations while Status is active.
//   - ID and Number are immutable after creation.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Number    string
	Type      AccountType
	Status    Status
	Balance   money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the account accepts financial operations.
func (a *Account) Active() bool {
	return a.Status == StatusActive
}

// Builder constructs Account instances, ensuring only valid accounts are
// created: zero balance, active status, generated identity.
type Builder struct {
	id          uuid.UUID
	userID      uuid.UUID
	number      string
	accountType AccountType
	createdAt   time.Time
}

// New creates a Builder with a fresh UUID, a generated account number and a
// current-account classification.
func New() *Builder {
	return &Builder{
		id:          uuid.New(),
		number:      NewAccountNumber(),
		accountType: TypeCurrent,
		createdAt:   time.Now().UTC(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. This is a mandatory field.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithNumber overrides the generated account number.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithType sets the account classification.
func (b *Builder) WithType(t AccountType) *Builder {
	b.accountType = t
	return b
}

// Build validates the builder state and returns the new Account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if !ValidAccountType(b.accountType) {
		return nil, errors.New("unknown account type")
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		Number:    b.number,
		Type:      b.accountType,
		Status:    StatusActive,
		Balance:   money.Zero(),
		CreatedAt: b.createdAt,
		UpdatedAt: b.createdAt,
	}, nil
}

// NewAccountFromData hydrates an Account from raw storage data. It bypasses
// invariants and should only be used by repositories and test fixtures.
func NewAccountFromData(
	id, userID uuid.UUID,
	number string,
	accountType AccountType,
	status Status,
	balance int64,
	createdAt, updatedAt time.Time,
) *Account {
	return &Account{
		ID:        id,
		UserID:    userID,
		Number:    number,
		Type:      accountType,
		Status:    status,
		Balance:   money.FromMinorUnits(balance),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

const accountNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewAccountNumber generates a human-readable account number of the form
// ACC-XXXXXXXXXX.
func NewAccountNumber() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = accountNumberAlphabet[int(b)%len(accountNumberAlphabet)]
	}
	return "ACC-" + string(buf)
}
