package facade

import (
	"errors"
)

var (
	// ErrBlockingRefreshContext is returned by GetAccounts when it is called
	// from a refresh task (e.g. from an observer) before the cache is
	// populated: waiting there would never finish.
	ErrBlockingRefreshContext = errors.New("cannot wait for accounts inside refresh context")

	ErrChangeSourceClosed = errors.New("change source closed unexpectedly")
)
