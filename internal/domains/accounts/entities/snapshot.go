package entities

import (
	"fmt"
	"slices"

	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

// Snapshot is the result of a single account listing: either an ordered list
// of accounts or the error the listing failed with. Snapshot is immutable.
type Snapshot struct {
	accounts []ids.AccountName
	err      error
}

func NewSnapshot(accounts []ids.AccountName) (Snapshot, error) {
	for i, a := range accounts {
		if !a.Valid() {
			return Snapshot{}, fmt.Errorf("invalid account at index %v", i)
		}
	}

	return Snapshot{accounts: slices.Clone(accounts)}, nil
}

// NewFailedSnapshot records a failed listing. err must not be nil.
func NewFailedSnapshot(err error) Snapshot {
	if err == nil {
		panic("failed snapshot requires an error")
	}

	return Snapshot{err: err}
}

// Accounts returns a copy of the accounts, or the error of a failed listing.
func (s Snapshot) Accounts() ([]ids.AccountName, error) {
	if s.err != nil {
		return nil, s.err
	}

	return slices.Clone(s.accounts), nil
}

func (s Snapshot) Err() error   { return s.err }
func (s Snapshot) Failed() bool { return s.err != nil }
func (s Snapshot) Len() int     { return len(s.accounts) }

func (s Snapshot) Contains(name ids.AccountName) bool {
	return s.err == nil && slices.Contains(s.accounts, name)
}

// Equal reports whether both snapshots list the same accounts in the same
// order. Two failed snapshots are equal when their error texts match.
func (s Snapshot) Equal(other Snapshot) bool {
	if (s.err == nil) != (other.err == nil) {
		return false
	}
	if s.err != nil {
		return s.err.Error() == other.err.Error()
	}

	return slices.Equal(s.accounts, other.accounts)
}

// Filter keeps only the accounts allowed by patterns. Failed snapshots are
// returned as is.
func (s Snapshot) Filter(patterns RestrictionPatterns) Snapshot {
	if s.err != nil || patterns.Empty() {
		return s
	}

	res := make([]ids.AccountName, 0, len(s.accounts))
	for _, a := range s.accounts {
		if patterns.Matches(a) {
			res = append(res, a)
		}
	}

	return Snapshot{accounts: res}
}
