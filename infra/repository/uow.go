// Package repository implements the ledger storage contracts on GORM with
// Postgres. Atomic units are database transactions; per-account holds are row
// locks taken in ascending identifier order.
package repository

import (
	"context"

	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UoW provides the transaction boundary and repository access in one
// abstraction, so every repository inside a unit shares the same DB session.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// session returns the transaction session inside a unit, the root session
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn inside a database transaction. The declared accounts are
// row-locked with SELECT ... FOR UPDATE in ascending identifier order before
// fn runs, so two units touching the same accounts serialize without
// deadlocking. Accounts that do not exist yet are simply not locked; the
// repository operations report them as not found.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error, accounts ...uuid.UUID) error {
	return mapError(u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(accounts) > 0 {
			ids := repository.SortAccountIDs(accounts)
			var locked []uuid.UUID
			err := tx.Model(&Account{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id IN ?", ids).
				Order("id").
				Pluck("id", &locked).Error
			if err != nil {
				return err
			}
		}
		return fn(&UoW{db: u.db, tx: tx})
	}))
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}
