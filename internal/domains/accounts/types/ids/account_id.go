package ids

import (
	"errors"
	"strings"
)

// AccountID is a stable identifier of an account, independent of its
// (possibly changing) name.
type AccountID struct {
	id      string
	account AccountName

	valid bool
}

func NewAccountID(account AccountName, id string) (AccountID, error) {
	u := AccountID{
		id:      id,
		account: account,
	}

	if err := u.validate(); err != nil {
		return AccountID{}, err
	}
	u.valid = true

	return u, nil
}

func (u AccountID) Valid() bool { return u.valid || u.validate() == nil }
func (u AccountID) validate() error {
	switch {
	case strings.TrimSpace(u.id) == "":
		return errors.New("account id cannot be empty")
	case !u.account.Valid():
		return errors.New("account name is invalid")
	default:
		return nil
	}
}

func (u AccountID) ID() string           { return u.id }
func (u AccountID) Account() AccountName { return u.account }
