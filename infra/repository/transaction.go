package repository

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	repo "github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository on the given
// session.
func NewTransactionRepository(db *gorm.DB) repo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends the record. Records are never updated or deleted; the
// assigned sequence is written back to the domain record.
func (r *transactionRepository) Create(ctx context.Context, t *ledger.Transaction) error {
	m := Transaction{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Kind:            string(t.Kind),
		Amount:          t.Amount.MinorUnits(),
		TargetAccountID: t.TargetAccountID,
		CreatedAt:       t.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError(err)
	}
	t.Sequence = m.Sequence
	return nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Transaction, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, sequence DESC").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		out = append(out, toDomainTransaction(&models[i]))
	}
	return out, nil
}

func toDomainTransaction(m *Transaction) *ledger.Transaction {
	return ledger.NewTransactionFromData(
		m.ID, m.AccountID,
		ledger.TransactionKind(m.Kind),
		m.Amount, m.TargetAccountID,
		m.Sequence, m.CreatedAt,
	)
}
