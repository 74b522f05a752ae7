package domain

import "errors"

var (
	// ErrDuplicateItemName means a menu carries two items with the same name,
	// which would make cart lines collide silently.
	ErrDuplicateItemName = errors.New("duplicate menu item name")

	// ErrUnknownItem means a cart operation referenced an item that is not on
	// the menu the cart was built from.
	ErrUnknownItem = errors.New("unknown menu item")

	// ErrAddressNotFound means the geocoding collaborator returned no result.
	ErrAddressNotFound = errors.New("address not found")

	// ErrNotFound means the store has no record for the given key.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps any store failure on save.
	ErrPersistence = errors.New("persistence failure")

	// ErrMissingAddress means a past order lacks a restaurant address and
	// cannot be reordered (tracking would be impossible).
	ErrMissingAddress = errors.New("missing restaurant address")

	// ErrSubmitInFlight means a submission is already pending for this cart.
	ErrSubmitInFlight = errors.New("order submission already in flight")
)
