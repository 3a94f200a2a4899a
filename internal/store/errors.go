package store

import (
	"context"
	"errors"

	apperrors "github.com/dueldisk/dueldisk-server/internal/errors"
)

var (
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrAlreadyExists is returned when creating an entity that already exists.
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrCardNotFound is returned when a card is not found in the store.
	ErrCardNotFound = errors.New("card not found")
	// ErrDeckNotFound is returned when a deck is not found in the store.
	ErrDeckNotFound = errors.New("deck not found")
)

// unavailable classifies a storage failure as store-unavailable so it
// surfaces to clients as 503 rather than a generic internal error. Context
// cancellation is the caller's doing and passes through untouched.
func unavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperrors.StoreUnavailable(err)
}
