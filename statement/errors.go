package statement

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTemplate is returned when rendering a statement whose template is blank.
	ErrEmptyTemplate = errors.New("no SQL template given")

	// ErrInvalidBinding is returned when a bound value is neither a scalar nor
	// a list of scalars.
	ErrInvalidBinding = errors.New("invalid binding")

	// ErrInvalidName is returned when a binding name is not an identifier.
	ErrInvalidName = errors.New("invalid placeholder name")

	// ErrUnresolvedPlaceholder is returned when a placeholder has no binding
	// and the caller asked for that to be an error.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	ErrNilEscaper = errors.New("escaper is required")
	ErrNilDialect = errors.New("dialect is required")
)

// InvalidBindingError records which binding was rejected.
type InvalidBindingError struct {
	Name  string
	Value any
	Err   error
}

func (e *InvalidBindingError) Error() string {
	return fmt.Sprintf("binding %q: %v", e.Name, e.Err)
}

func (e *InvalidBindingError) Unwrap() error { return e.Err }

// UnresolvedPlaceholderError lists placeholders that had no binding, in order
// of first appearance.
type UnresolvedPlaceholderError struct {
	Names []string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("%v: :%s", ErrUnresolvedPlaceholder, strings.Join(e.Names, ", :"))
}

func (e *UnresolvedPlaceholderError) Unwrap() error { return ErrUnresolvedPlaceholder }
