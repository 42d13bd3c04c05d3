// Package ledger implements the ledger operations: deposit, withdrawal and
// transfer as short-lived atomic units against the account store, plus the
// account lifecycle operations the surrounding API needs.
//
// Every financial operation validates its request, then runs the balance
// mutation and the transaction-record append inside a single unit of work so
// no caller can observe one without the other.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/bankledger/pkg/config"
	domain "github.com/amirasaad/bankledger/pkg/domain/ledger"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
)

// DefaultOperationTimeout bounds a single ledger operation when the
// configuration does not say otherwise.
const DefaultOperationTimeout = 5 * time.Second

// Service provides the ledger operations. It is safe for concurrent use;
// per-account serialization is delegated to the unit of work.
type Service struct {
	uow       repository.UnitOfWork
	logger    *slog.Logger
	opTimeout time.Duration
}

// NewService creates a Service backed by the given unit of work.
func NewService(cfg config.Ledger, uow repository.UnitOfWork, logger *slog.Logger) *Service {
	timeout := cfg.OperationTimeout
	if timeout <= 0 {
		timeout = DefaultOperationTimeout
	}
	return &Service{uow: uow, logger: logger, opTimeout: timeout}
}

// opContext applies the per-operation deadline.
func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// mapTimeout surfaces an exceeded operation deadline as the typed error. The
// engine never retries a timed-out withdrawal or transfer; the caller decides.
func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	return err
}

// CreateAccount creates a new account for the user with zero balance and
// active status.
func (s *Service) CreateAccount(ctx context.Context, userID uuid.UUID, accountType domain.AccountType) (*domain.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	acct, err := domain.New().WithUserID(userID).WithType(accountType).Build()
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, acct)
	})
	if err != nil {
		s.logger.Error("account creation failed", "userID", userID, "error", err)
		return nil, mapTimeout(err)
	}
	s.logger.Info("account created", "accountID", acct.ID, "userID", userID, "number", acct.Number)
	return acct, nil
}

// GetAccount returns the current snapshot of an account.
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acct, err := repo.Get(ctx, accountID)
	return acct, mapTimeout(err)
}

// ListAccounts returns all accounts owned by the user.
func (s *Service) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	accts, err := repo.ListByUser(ctx, userID)
	return accts, mapTimeout(err)
}

// Deposit credits the account and appends a deposit record within one atomic
// unit. Returns the updated account snapshot and the record.
func (s *Service) Deposit(ctx context.Context, accountID uuid.UUID, amount int64) (*domain.Account, *domain.Transaction, error) {
	if amount <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var (
		acct   *domain.Account
		record *domain.Transaction
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		acct, err = accounts.AdjustBalance(ctx, accountID, amount)
		if err != nil {
			return err
		}
		record = domain.NewDeposit(accountID, money.FromMinorUnits(amount))
		return transactions.Create(ctx, record)
	}, accountID)
	if err != nil {
		s.logger.Error("deposit failed", "accountID", accountID, "amount", amount, "error", err)
		return nil, nil, mapTimeout(err)
	}
	s.logger.Info("deposit applied", "accountID", accountID, "amount", amount, "balance", acct.Balance.MinorUnits())
	return acct, record, nil
}

// Withdraw debits the account and appends a withdrawal record within one
// atomic unit. The sufficiency check and the debit are the same atomic
// conditional update, so no concurrent operation can invalidate the check.
// Withdrawing the exact balance is permitted and drives it to zero.
func (s *Service) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64) (*domain.Account, *domain.Transaction, error) {
	if amount <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var (
		acct   *domain.Account
		record *domain.Transaction
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		acct, err = accounts.AdjustBalance(ctx, accountID, -amount)
		if err != nil {
			return err
		}
		record = domain.NewWithdrawal(accountID, money.FromMinorUnits(amount))
		return transactions.Create(ctx, record)
	}, accountID)
	if err != nil {
		s.logger.Error("withdrawal failed", "accountID", accountID, "amount", amount, "error", err)
		return nil, nil, mapTimeout(err)
	}
	s.logger.Info("withdrawal applied", "accountID", accountID, "amount", amount, "balance", acct.Balance.MinorUnits())
	return acct, record, nil
}

// Transfer moves amount from one account to another within one atomic unit
// holding both accounts. Exactly one transfer record is appended, attributed
// to the source with the destination as counterpart. The unit of work
// acquires the two holds in ascending identifier order, so concurrent
// opposite-direction transfers between the same pair cannot deadlock.
func (s *Service) Transfer(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount int64) (*domain.Transaction, error) {
	if fromAccountID == toAccountID {
		return nil, domain.ErrInvalidTransfer
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var record *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		// destination must exist and be active before any mutation
		dest, err := accounts.Get(ctx, toAccountID)
		if err != nil {
			return err
		}
		if !dest.Active() {
			return domain.ErrAccountInactive
		}
		if _, err = accounts.AdjustBalance(ctx, fromAccountID, -amount); err != nil {
			return err
		}
		if _, err = accounts.AdjustBalance(ctx, toAccountID, amount); err != nil {
			return err
		}
		record = domain.NewTransfer(fromAccountID, toAccountID, money.FromMinorUnits(amount))
		return transactions.Create(ctx, record)
	}, fromAccountID, toAccountID)
	if err != nil {
		s.logger.Error("transfer failed",
			"fromAccountID", fromAccountID, "toAccountID", toAccountID, "amount", amount, "error", err)
		return nil, mapTimeout(err)
	}
	s.logger.Info("transfer applied",
		"fromAccountID", fromAccountID, "toAccountID", toAccountID, "amount", amount)
	return record, nil
}

// Deactivate transitions the account to inactive. The transition is one-way
// and idempotent: deactivating an already-inactive account succeeds and
// reports the inactive state. No transaction record is written.
func (s *Service) Deactivate(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acct, err := repo.SetStatus(ctx, accountID, domain.StatusInactive)
	if err != nil {
		s.logger.Error("deactivation failed", "accountID", accountID, "error", err)
		return nil, mapTimeout(err)
	}
	s.logger.Info("account deactivated", "accountID", accountID)
	return acct, nil
}

// History returns the account's transaction records, newest first by creation
// time with sequence order breaking ties.
func (s *Service) History(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	records, err := repo.ListByAccount(ctx, accountID)
	return records, mapTimeout(err)
}
