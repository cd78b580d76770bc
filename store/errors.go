package store

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned by PlaceOrder when there is nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

// ErrEmailTaken is returned by Signup for a duplicate email.
var ErrEmailTaken = errors.New("email already registered")

// ValidationError rejects malformed input (missing required field,
// non-numeric price, unknown category). Not-found on update/delete is NOT
// an error: those operations report it through their found return instead,
// so deletes stay idempotent and callers still learn whether the target
// existed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failed read or write of a persisted blob.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
