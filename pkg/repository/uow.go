package repository

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"
)

// UnitOfWork groups repository calls into one atomic unit: either every
// mutation inside Do commits and becomes visible together, or none do, with
// no partial state observable by any other caller.
//
// The repositories returned by the accessor methods are bound to the current
// unit's session, so every call inside Do shares the same transactional
// scope. Outside Do they operate as independent single-call units.
type UnitOfWork interface {
	// Do executes fn within one atomic unit. The accounts list declares every
	// account whose balance the unit may touch; implementations acquire an
	// exclusive hold on each, in ascending identifier order regardless of the
	// order given, so that two concurrent units over the same accounts can
	// never deadlock. Accounts not listed must not be mutated inside fn.
	//
	// If fn returns an error the unit is rolled back and the error returned
	// unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error, accounts ...uuid.UUID) error

	// AccountRepository returns the account store bound to the current unit.
	AccountRepository() (AccountRepository, error)

	// TransactionRepository returns the transaction log bound to the current
	// unit.
	TransactionRepository() (TransactionRepository, error)
}

// SortAccountIDs returns the deduplicated account IDs in ascending byte
// order. Backends use it to acquire per-account holds deterministically.
func SortAccountIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
