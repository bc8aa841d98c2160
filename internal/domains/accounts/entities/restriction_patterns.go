package entities

import (
	"errors"
	"slices"
	"strings"

	"github.com/ryanuber/go-glob"

	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

// RestrictionPatterns limits which accounts are visible to consumers. Each
// pattern is a glob where '*' matches any run of characters, e.g.
// "*@example.com". An empty set restricts nothing.
type RestrictionPatterns struct {
	patterns []string
}

func NewRestrictionPatterns(patterns ...string) (RestrictionPatterns, error) {
	res := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			return RestrictionPatterns{}, errors.New("restriction pattern cannot be empty")
		}

		if !slices.Contains(res, p) {
			res = append(res, p)
		}
	}

	return RestrictionPatterns{patterns: res}, nil
}

func (r RestrictionPatterns) Empty() bool        { return len(r.patterns) == 0 }
func (r RestrictionPatterns) Patterns() []string { return slices.Clone(r.patterns) }

// Matches reports whether account is allowed by at least one pattern. Any
// account matches an empty set.
func (r RestrictionPatterns) Matches(account ids.AccountName) bool {
	if r.Empty() {
		return true
	}

	name := account.String()
	for _, p := range r.patterns {
		if glob.Glob(p, name) {
			return true
		}
	}

	return false
}

func (r RestrictionPatterns) Equal(other RestrictionPatterns) bool {
	return slices.Equal(r.patterns, other.patterns)
}
