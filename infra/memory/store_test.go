package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T, s *Store, balance int64) *ledger.Account {
	t.Helper()
	acct, err := ledger.New().WithUserID(uuid.New()).Build()
	require.NoError(t, err)
	repo, err := s.AccountRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), acct))
	if balance > 0 {
		acct, err = repo.AdjustBalance(context.Background(), acct.ID, balance)
		require.NoError(t, err)
	}
	return acct
}

func TestAdjustBalance_NotFound(t *testing.T) {
	s := New()
	repo, err := s.AccountRepository()
	require.NoError(t, err)

	_, err = repo.AdjustBalance(context.Background(), uuid.New(), 100)
	require.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestAdjustBalance_NeverBelowZero(t *testing.T) {
	s := New()
	acct := newTestAccount(t, s, 100)
	repo, err := s.AccountRepository()
	require.NoError(t, err)

	_, err = repo.AdjustBalance(context.Background(), acct.ID, -101)
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	got, err := repo.Get(context.Background(), acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Balance.MinorUnits())
}

func TestAdjustBalance_ExactBalanceToZero(t *testing.T) {
	s := New()
	acct := newTestAccount(t, s, 100)
	repo, err := s.AccountRepository()
	require.NoError(t, err)

	got, err := repo.AdjustBalance(context.Background(), acct.ID, -100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Balance.MinorUnits())
}

func TestAdjustBalance_InactiveAccount(t *testing.T) {
	s := New()
	acct := newTestAccount(t, s, 100)
	repo, err := s.AccountRepository()
	require.NoError(t, err)

	_, err = repo.SetStatus(context.Background(), acct.ID, ledger.StatusInactive)
	require.NoError(t, err)

	_, err = repo.AdjustBalance(context.Background(), acct.ID, 50)
	require.ErrorIs(t, err, ledger.ErrAccountInactive)
}

func TestSetStatus_Idempotent(t *testing.T) {
	s := New()
	acct := newTestAccount(t, s, 0)
	repo, err := s.AccountRepository()
	require.NoError(t, err)

	first, err := repo.SetStatus(context.Background(), acct.ID, ledger.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusInactive, first.Status)

	second, err := repo.SetStatus(context.Background(), acct.ID, ledger.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusInactive, second.Status)
}

func TestDo_RollbackRestoresBalancesAndDropsRecords(t *testing.T) {
	s := New()
	src := newTestAccount(t, s, 1000)
	dst := newTestAccount(t, s, 500)
	boom := errors.New("boom")

	err := s.Do(context.Background(), func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		require.NoError(t, err)
		transactions, err := uow.TransactionRepository()
		require.NoError(t, err)

		if _, err := accounts.AdjustBalance(context.Background(), src.ID, -300); err != nil {
			return err
		}
		if _, err := accounts.AdjustBalance(context.Background(), dst.ID, 300); err != nil {
			return err
		}
		rec := ledger.NewTransfer(src.ID, dst.ID, money.FromMinorUnits(300))
		if err := transactions.Create(context.Background(), rec); err != nil {
			return err
		}
		return boom
	}, src.ID, dst.ID)
	require.ErrorIs(t, err, boom)

	repo, err := s.AccountRepository()
	require.NoError(t, err)
	gotSrc, err := repo.Get(context.Background(), src.ID)
	require.NoError(t, err)
	gotDst, err := repo.Get(context.Background(), dst.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), gotSrc.Balance.MinorUnits())
	assert.Equal(t, int64(500), gotDst.Balance.MinorUnits())

	txRepo, err := s.TransactionRepository()
	require.NoError(t, err)
	records, err := txRepo.ListByAccount(context.Background(), src.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDo_CommitAssignsIncreasingSequences(t *testing.T) {
	s := New()
	acct := newTestAccount(t, s, 0)

	var first, second *ledger.Transaction
	err := s.Do(context.Background(), func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		require.NoError(t, err)
		first = ledger.NewDeposit(acct.ID, money.FromMinorUnits(10))
		second = ledger.NewDeposit(acct.ID, money.FromMinorUnits(20))
		if err := transactions.Create(context.Background(), first); err != nil {
			return err
		}
		return transactions.Create(context.Background(), second)
	}, acct.ID)
	require.NoError(t, err)

	assert.Greater(t, second.Sequence, first.Sequence)
}

func TestListByAccount_NewestFirstWithStableTieBreak(t *testing.T) {
	s := New()
	acct := newTestAccount(t, s, 0)
	txRepo, err := s.TransactionRepository()
	require.NoError(t, err)

	// identical timestamps; sequence order must break the tie
	at := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := ledger.NewDeposit(acct.ID, money.FromMinorUnits(int64(i+1)))
		rec.CreatedAt = at
		require.NoError(t, txRepo.Create(context.Background(), rec))
	}

	records, err := txRepo.ListByAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i := 1; i < len(records); i++ {
		assert.Greater(t, records[i-1].Sequence, records[i].Sequence)
	}
}

func TestDo_OppositeDirectionUnitsDoNotDeadlock(t *testing.T) {
	s := New()
	a := newTestAccount(t, s, 10_000)
	b := newTestAccount(t, s, 10_000)

	move := func(from, to uuid.UUID) error {
		return s.Do(context.Background(), func(uow repository.UnitOfWork) error {
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			if _, err := accounts.AdjustBalance(context.Background(), from, -1); err != nil {
				return err
			}
			_, err = accounts.AdjustBalance(context.Background(), to, 1)
			return err
		}, from, to)
	}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, move(a.ID, b.ID))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, move(b.ID, a.ID))
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("concurrent opposite-direction units deadlocked")
	}

	repo, err := s.AccountRepository()
	require.NoError(t, err)
	gotA, err := repo.Get(context.Background(), a.ID)
	require.NoError(t, err)
	gotB, err := repo.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20_000), gotA.Balance.MinorUnits()+gotB.Balance.MinorUnits())
}
