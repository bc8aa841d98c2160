package ids_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

func TestNewAccountName(t *testing.T) {
	for _, tt := range []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "email", input: "alice@example.com"},
		{name: "plain", input: "alice"},
		{name: "empty", input: "", wantErr: true},
		{name: "leading space", input: " alice@example.com", wantErr: true},
		{name: "inner space", input: "alice @example.com", wantErr: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAccountName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, got.Valid())
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Valid())
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestNewAccountID(t *testing.T) {
	name, err := NewAccountName("alice@example.com")
	require.NoError(t, err)

	id, err := NewAccountID(name, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", id.ID())
	assert.Equal(t, name, id.Account())

	_, err = NewAccountID(name, "  ")
	require.Error(t, err)

	_, err = NewAccountID(AccountName{}, "1")
	require.Error(t, err)
}

func TestNames(t *testing.T) {
	a, _ := NewAccountName("a@x")
	b, _ := NewAccountName("b@x")

	assert.Equal(t, []string{"a@x", "b@x"}, Names([]AccountName{a, b}))
	assert.Empty(t, Names(nil))
}
