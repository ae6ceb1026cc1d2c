package feature

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the rule's anchor is not on the page.
	ErrNotFound = errors.New("element not found")
	// ErrMalformed means the anchor exists but its value cannot be used.
	ErrMalformed = errors.New("value malformed")
)

// FieldError reports which field aborted an extraction.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
