package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes for transient transaction contention.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// mapError converts GORM and driver errors to domain errors, keeping storage
// concerns inside the infrastructure layer. Unmapped errors pass through
// unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.ErrAccountNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ledger.ErrTimeout
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return ledger.ErrConflict
		}
	}
	return err
}
