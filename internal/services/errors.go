package services

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	// ErrUnauthorized covers a wrong admin password as well as a missing,
	// unknown or expired session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTooManyAttempts is returned by Login while a client is locked out.
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// ValidationError reports malformed or missing input. Fields names every
// violated input, in the order they were checked.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a reference to an order id that does not exist.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order not found: %d", e.ID)
}

// validation collects field violations while a request is checked.
type validation struct {
	fields   []string
	messages []string
}

func (v *validation) add(field, message string) {
	v.fields = append(v.fields, field)
	v.messages = append(v.messages, message)
}

func (v *validation) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	msg := v.messages[0]
	if n := len(v.messages); n > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, n-1)
	}
	return &ValidationError{Message: msg, Fields: v.fields}
}
