// Package memory provides an in-memory implementation of the ledger storage
// contracts. It backs the test suites and local development, and demonstrates
// that the engine's correctness does not depend on a transactional database:
// atomic units are built from per-account mutexes acquired in ascending
// identifier order plus an undo journal.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	"github.com/amirasaad/bankledger/pkg/domain/money"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/google/uuid"
)

// Store holds all accounts and the transaction log. It implements
// repository.UnitOfWork; outside Do every repository call is its own
// single-call atomic unit.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*slot
	log      []ledger.Transaction
	seq      int64
}

// slot pairs an account with the mutex that serializes its mutations.
type slot struct {
	mu   sync.Mutex
	acct ledger.Account
}

// New creates an empty Store.
func New() *Store {
	return &Store{accounts: make(map[uuid.UUID]*slot)}
}

// slot fetches the slot pointer without holding the store lock afterwards,
// so callers can block on the slot mutex without stalling unit commits.
func (s *Store) slot(id uuid.UUID) (*slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.accounts[id]
	return sl, ok
}

// unit is one in-flight atomic unit: the slots it holds, the undo journal for
// balances and statuses it has touched, and the records pending append.
type unit struct {
	held    []*slot
	heldIDs map[uuid.UUID]*slot
	undo    map[uuid.UUID]ledger.Account
	pending []*ledger.Transaction
}

func (u *unit) holds(id uuid.UUID) (*slot, bool) {
	sl, ok := u.heldIDs[id]
	return sl, ok
}

// remember journals the pre-mutation state of an account, once.
func (u *unit) remember(id uuid.UUID, before ledger.Account) {
	if _, ok := u.undo[id]; !ok {
		u.undo[id] = before
	}
}

func (u *unit) rollback() {
	for id, before := range u.undo {
		if sl, ok := u.holds(id); ok {
			sl.acct = before
		}
	}
	u.pending = nil
}

// Do implements repository.UnitOfWork. Holds are acquired in ascending
// identifier order so opposite-direction units over the same accounts cannot
// deadlock.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error, accounts ...uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u := &unit{
		heldIDs: make(map[uuid.UUID]*slot),
		undo:    make(map[uuid.UUID]ledger.Account),
	}
	for _, id := range repository.SortAccountIDs(accounts) {
		if sl, ok := s.slot(id); ok {
			sl.mu.Lock()
			u.held = append(u.held, sl)
			u.heldIDs[id] = sl
		}
	}
	defer func() {
		for i := len(u.held) - 1; i >= 0; i-- {
			u.held[i].mu.Unlock()
		}
	}()

	if err := fn(&boundUoW{store: s, unit: u}); err != nil {
		u.rollback()
		return err
	}
	s.commit(u)
	return nil
}

// commit appends the unit's pending records to the log, assigning sequence
// numbers, while the unit still holds its account slots.
func (s *Store) commit(u *unit) {
	if len(u.pending) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range u.pending {
		s.seq++
		t.Sequence = s.seq
		s.log = append(s.log, *t)
	}
	u.pending = nil
}

// AccountRepository implements repository.UnitOfWork.
func (s *Store) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{store: s}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (s *Store) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepository{store: s}, nil
}

// boundUoW is a UnitOfWork whose repositories operate inside an open unit.
type boundUoW struct {
	store *Store
	unit  *unit
}

// Do flattens nested units into the enclosing one: the declared accounts are
// already held and the outer commit or rollback covers all mutations.
func (b *boundUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error, accounts ...uuid.UUID) error {
	return fn(b)
}

func (b *boundUoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{store: b.store, unit: b.unit}, nil
}

func (b *boundUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepository{store: b.store, unit: b.unit}, nil
}

type accountRepository struct {
	store *Store
	unit  *unit
}

// withSlot runs fn with the slot's mutex held, reusing the unit's hold when
// the account was declared to the enclosing unit.
func (r *accountRepository) withSlot(id uuid.UUID, fn func(sl *slot) error) error {
	if r.unit != nil {
		if sl, ok := r.unit.holds(id); ok {
			return fn(sl)
		}
	}
	sl, ok := r.store.slot(id)
	if !ok {
		return ledger.ErrAccountNotFound
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return fn(sl)
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var out ledger.Account
	err := r.withSlot(id, func(sl *slot) error {
		out = sl.acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *accountRepository) Create(ctx context.Context, a *ledger.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[a.ID]; ok {
		return ledger.ErrConflict
	}
	r.store.accounts[a.ID] = &slot{acct: *a}
	return nil
}

func (r *accountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) (*ledger.Account, error) {
	var out ledger.Account
	err := r.withSlot(id, func(sl *slot) error {
		if !sl.acct.Active() {
			return ledger.ErrAccountInactive
		}
		newBalance, err := sl.acct.Balance.Add(money.FromMinorUnits(delta))
		if err != nil {
			return ledger.ErrInvalidAmount
		}
		if newBalance.IsNegative() {
			return ledger.ErrInsufficientFunds
		}
		if r.unit != nil {
			r.unit.remember(id, sl.acct)
		}
		sl.acct.Balance = newBalance
		sl.acct.UpdatedAt = time.Now().UTC()
		out = sl.acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *accountRepository) SetStatus(ctx context.Context, id uuid.UUID, status ledger.Status) (*ledger.Account, error) {
	var out ledger.Account
	err := r.withSlot(id, func(sl *slot) error {
		if r.unit != nil {
			r.unit.remember(id, sl.acct)
		}
		if sl.acct.Status != status {
			sl.acct.Status = status
			sl.acct.UpdatedAt = time.Now().UTC()
		}
		out = sl.acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ledger.Account, error) {
	r.store.mu.RLock()
	slots := make([]*slot, 0, len(r.store.accounts))
	for _, sl := range r.store.accounts {
		slots = append(slots, sl)
	}
	r.store.mu.RUnlock()

	out := make([]*ledger.Account, 0)
	for _, sl := range slots {
		sl.mu.Lock()
		if sl.acct.UserID == userID {
			acct := sl.acct
			out = append(out, &acct)
		}
		sl.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

type transactionRepository struct {
	store *Store
	unit  *unit
}

func (r *transactionRepository) Create(ctx context.Context, t *ledger.Transaction) error {
	if r.unit != nil {
		r.unit.pending = append(r.unit.pending, t)
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq++
	t.Sequence = r.store.seq
	r.store.log = append(r.store.log, *t)
	return nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*ledger.Transaction, 0)
	for i := range r.store.log {
		if r.store.log[i].AccountID == accountID {
			t := r.store.log[i]
			out = append(out, &t)
		}
	}
	// newest first, sequence breaks timestamp ties
	sort.Slice(out, func(i, j int) bool { return newer(out[i], out[j]) })
	return out, nil
}

func newer(a, b *ledger.Transaction) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.Sequence > b.Sequence
}
