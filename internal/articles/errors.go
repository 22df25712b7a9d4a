package articles

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidID is returned when an identifier is not a well-formed UUID.
	// The store is never consulted in that case.
	ErrInvalidID = errors.New("invalid article id")

	// ErrNotFound is returned when no article has the requested identifier.
	ErrNotFound = errors.New("article not found")
)

// ValidationError reports missing or malformed client input.
type ValidationError struct {
	// Fields names the offending fields, if any.
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// missingFields builds the error returned for blank required fields.
func missingFields(fields []string) *ValidationError {
	return &ValidationError{
		Fields:  fields,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
	}
}

// StoreError wraps any failure of the underlying store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
