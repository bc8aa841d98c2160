package entities_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"

	. "github.com/quenbyako/accountcache/internal/domains/accounts/entities"
)

func TestSnapshotIsImmutable(t *testing.T) {
	src := names("a@x.com", "b@x.com")
	s := must(NewSnapshot(src))

	src[0] = must(ids.NewAccountName("changed@x.com"))

	got, err := s.Accounts()
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, ids.Names(got))

	got[1] = must(ids.NewAccountName("changed@x.com"))
	again, _ := s.Accounts()
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, ids.Names(again))
}

func TestSnapshotRejectsInvalidAccounts(t *testing.T) {
	_, err := NewSnapshot([]ids.AccountName{{}})
	require.Error(t, err)
}

func TestFailedSnapshot(t *testing.T) {
	boom := errors.New("permission denied")
	s := NewFailedSnapshot(boom)

	_, err := s.Accounts()
	require.ErrorIs(t, err, boom)
	assert.True(t, s.Failed())
	assert.False(t, s.Contains(must(ids.NewAccountName("a@x.com"))))

	assert.Panics(t, func() { NewFailedSnapshot(nil) })
}

func TestSnapshotEqual(t *testing.T) {
	a := must(NewSnapshot(names("a@x.com", "b@x.com")))
	b := must(NewSnapshot(names("a@x.com", "b@x.com")))
	c := must(NewSnapshot(names("b@x.com", "a@x.com")))
	f1 := NewFailedSnapshot(errors.New("x"))
	f2 := NewFailedSnapshot(errors.New("x"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(f1))
	assert.True(t, f1.Equal(f2))
}

func TestSnapshotFilter(t *testing.T) {
	s := must(NewSnapshot(names("alice@corp.com", "bob@gmail.com", "carol@corp.com")))

	for _, tt := range []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name: "no patterns",
			want: []string{"alice@corp.com", "bob@gmail.com", "carol@corp.com"},
		},
		{
			name:     "domain",
			patterns: []string{"*@corp.com"},
			want:     []string{"alice@corp.com", "carol@corp.com"},
		},
		{
			name:     "exact and wildcard",
			patterns: []string{"bob@gmail.com", "carol*"},
			want:     []string{"bob@gmail.com", "carol@corp.com"},
		},
		{
			name:     "nothing matches",
			patterns: []string{"*@other.org"},
			want:     []string{},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := must(NewRestrictionPatterns(tt.patterns...))

			got, err := s.Filter(p).Accounts()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, ids.Names(got)); diff != "" {
				t.Errorf("filtered accounts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterKeepsFailure(t *testing.T) {
	boom := errors.New("boom")
	p := must(NewRestrictionPatterns("*@corp.com"))

	_, err := NewFailedSnapshot(boom).Filter(p).Accounts()
	require.ErrorIs(t, err, boom)
}

func TestRestrictionPatterns(t *testing.T) {
	_, err := NewRestrictionPatterns("*@corp.com", " ")
	require.Error(t, err)

	p := must(NewRestrictionPatterns("*@corp.com", "*@corp.com", " a@b.c "))
	assert.Equal(t, []string{"*@corp.com", "a@b.c"}, p.Patterns())
	assert.True(t, p.Equal(must(NewRestrictionPatterns("*@corp.com", "a@b.c"))))
	assert.True(t, RestrictionPatterns{}.Empty())
	assert.True(t, RestrictionPatterns{}.Matches(must(ids.NewAccountName("any@thing"))))
}

func names(in ...string) []ids.AccountName {
	res := make([]ids.AccountName, len(in))
	for i, n := range in {
		res[i] = must(ids.NewAccountName(n))
	}

	return res
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}
