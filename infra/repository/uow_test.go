package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_AccessorsReturnRepositories(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	accounts, err := uow.AccountRepository()
	require.NoError(t, err)
	assert.NotNil(t, accounts)

	transactions, err := uow.TransactionRepository()
	require.NoError(t, err)
	assert.NotNil(t, transactions)
}

func TestUoW_DoCommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoLocksDeclaredAccountsInOrder(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	a := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT "id" FROM "accounts" WHERE id IN ($1,$2) ORDER BY id FOR UPDATE`)).
		WithArgs(b, a). // ascending identifier order, not call order
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(b).AddRow(a))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		return nil
	}, a, b)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoMapsRecordNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		return gorm.ErrRecordNotFound
	})
	require.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	passthrough := errors.New("passthrough")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ledger.ErrAccountNotFound},
		{"deadline exceeded", context.DeadlineExceeded, ledger.ErrTimeout},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, ledger.ErrConflict},
		{"deadlock detected", &pgconn.PgError{Code: "40P01"}, ledger.ErrConflict},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, ledger.ErrConflict},
		{"other pg error", &pgconn.PgError{Code: "23505"}, nil},
		{"unmapped", passthrough, passthrough},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.want == nil && tt.in != nil {
				assert.Equal(t, tt.in, got)
				return
			}
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
