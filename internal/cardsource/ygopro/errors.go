package ygopro

import (
	"errors"
	"fmt"
)

// Sentinel errors for card database operations.
var (
	ErrNotFound    = errors.New("ygopro: no matching card")
	ErrRateLimited = errors.New("ygopro: rate limited by server")
	ErrBadRequest  = errors.New("ygopro: bad request")
	ErrServer      = errors.New("ygopro: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op    string // Operation: "searchByName", "searchByCode"
	Query string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ygopro %s [%s]: %v", e.Op, e.Query, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, query string, err error) error {
	return &Error{
		Op:    op,
		Query: query,
		Err:   err,
	}
}
