package block

import (
	"errors"
	"fmt"
)

var (
	// ErrArgument is returned when a required argument is nil or empty.
	ErrArgument = errors.New("invalid argument")
	// ErrFormat is returned when a persisted document is malformed.
	ErrFormat = errors.New("malformed document")
	// ErrStructuralType is returned when a node does not fit the slot it is attached to.
	ErrStructuralType = errors.New("node does not fit slot")
	// ErrInvalidOperation is returned when an operation lacks the state it requires.
	ErrInvalidOperation = errors.New("invalid operation")
)

// ArgumentError reports a nil or empty required argument at a public entry point.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %s", e.Name, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }

// FormatError identifies the element (and optionally the attribute) that made
// a document unreadable.
type FormatError struct {
	Element   string
	Attribute string
	Reason    string
}

func (e *FormatError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("element <%s> attribute %q: %s", e.Element, e.Attribute, e.Reason)
	}
	return fmt.Sprintf("element <%s>: %s", e.Element, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// StructuralTypeError reports a node rejected by a slot's Fitter.
type StructuralTypeError struct {
	Kind     Kind
	Expected string
}

func (e *StructuralTypeError) Error() string {
	return fmt.Sprintf("%s cannot be placed where %s is expected", e.Kind, e.Expected)
}

func (e *StructuralTypeError) Unwrap() error { return ErrStructuralType }

// InvalidOperationError reports an operation attempted without its prerequisite state.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *InvalidOperationError) Unwrap() error { return ErrInvalidOperation }
