package ports

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrUnavailable = errors.New("platform service unavailable")

	ErrRateLimited = errors.New("change notification rate limited")
)

// DelegateError is returned when the platform account capability fails, e.g.
// due to missing permissions or an unavailable backing service.
type DelegateError struct {
	Op  string
	Err error
}

var _ error = (*DelegateError)(nil)

func ErrDelegate(op string, err error) *DelegateError {
	return &DelegateError{Op: op, Err: err}
}

func (e *DelegateError) Error() string {
	return fmt.Sprintf("account delegate %v: %v", e.Op, e.Err)
}

func (e *DelegateError) Unwrap() error { return e.Err }

type InvalidChangeKindError struct {
	Value string
}

var _ error = (*InvalidChangeKindError)(nil)

func ErrInvalidChangeKind(value string) *InvalidChangeKindError {
	return &InvalidChangeKindError{Value: value}
}

func (e *InvalidChangeKindError) Error() string {
	return fmt.Sprintf("change kind %q is not valid", e.Value)
}
