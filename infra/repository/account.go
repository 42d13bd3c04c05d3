package repository

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	repo "github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository on the given session.
func NewAccountRepository(db *gorm.DB) repo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return toDomain(&m), nil
}

func (r *accountRepository) Create(ctx context.Context, a *ledger.Account) error {
	m := Account{
		ID:        a.ID,
		UserID:    a.UserID,
		Number:    a.Number,
		Type:      string(a.Type),
		Status:    string(a.Status),
		Balance:   a.Balance.MinorUnits(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

// AdjustBalance applies the delta as one conditional UPDATE: the status and
// sufficiency predicates are part of the statement, so there is no gap in
// which a concurrent operation could invalidate the check. A zero row count
// is disambiguated with a follow-up read.
func (r *accountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) (*ledger.Account, error) {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ? AND status = ? AND balance + ? >= 0", id, string(ledger.StatusActive), delta).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return nil, mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		acct, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !acct.Active() {
			return nil, ledger.ErrAccountInactive
		}
		return nil, ledger.ErrInsufficientFunds
	}
	return r.Get(ctx, id)
}

func (r *accountRepository) SetStatus(ctx context.Context, id uuid.UUID, status ledger.Status) (*ledger.Account, error) {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return nil, mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ledger.ErrAccountNotFound
	}
	return r.Get(ctx, id)
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ledger.Account, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("number").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*ledger.Account, 0, len(models))
	for i := range models {
		out = append(out, toDomain(&models[i]))
	}
	return out, nil
}

func toDomain(m *Account) *ledger.Account {
	return ledger.NewAccountFromData(
		m.ID, m.UserID, m.Number,
		ledger.AccountType(m.Type), ledger.Status(m.Status),
		m.Balance, m.CreatedAt, m.UpdatedAt,
	)
}
