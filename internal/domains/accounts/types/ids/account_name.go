package ids

import (
	"errors"
	"strings"
	"unicode"
)

// AccountName identifies an account known to the platform, usually an email
// address. Names are compared byte-wise.
type AccountName struct {
	name string

	valid bool
}

func NewAccountName(name string) (AccountName, error) {
	u := AccountName{name: name}

	if err := u.validate(); err != nil {
		return AccountName{}, err
	}
	u.valid = true

	return u, nil
}

func (u AccountName) Valid() bool { return u.valid || u.validate() == nil }
func (u AccountName) validate() error {
	switch {
	case u.name == "":
		return errors.New("account name cannot be empty")
	case strings.IndexFunc(u.name, unicode.IsSpace) >= 0:
		return errors.New("account name cannot contain whitespace")
	default:
		return nil
	}
}

func (u AccountName) String() string { return u.name }

// Names converts account names to plain strings, preserving order.
func Names(accounts []AccountName) []string {
	res := make([]string, len(accounts))
	for i, a := range accounts {
		res[i] = a.name
	}

	return res
}
