package repository

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrOrderNotFound is returned when no order has the requested id.
var ErrOrderNotFound = errors.New("order not found")

// StorageError wraps a failure of the underlying storage medium.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
