package value

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dzonerzy/snapopt/strslice"
)

// BindingKind categorises static binding failures.
type BindingKind string

const (
	// Unresolved means no strategy is registered for a type.
	Unresolved BindingKind = "unresolved_binding"
	// Ambiguous means more than one strategy competes for a type.
	Ambiguous BindingKind = "ambiguous_binding"
)

var (
	// ErrUnresolved matches every BindingError of kind Unresolved.
	ErrUnresolved = errors.New("no binding registered")
	// ErrAmbiguous matches every BindingError of kind Ambiguous.
	ErrAmbiguous = errors.New("conflicting bindings")
	// ErrNotAllowed is the cause reported by Mapping for unknown names.
	ErrNotAllowed = errors.New("value not allowed")
)

// BindingError reports a missing or conflicting strategy. It is a
// configuration defect and is meant to surface before any parsing runs.
type BindingError struct {
	Kind     BindingKind
	Type     reflect.Type
	Registry string // "value" or "container"
	Detail   string
}

func (e *BindingError) Error() string {
	var b strings.Builder
	b.WriteString(e.Registry)
	b.WriteString(": ")
	if e.Kind == Ambiguous {
		b.WriteString("conflicting bindings for ")
	} else {
		b.WriteString("no binding registered for ")
	}
	b.WriteString(TypeName(e.Type))
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrUnresolved and ErrAmbiguous.
func (e *BindingError) Unwrap() error {
	if e.Kind == Ambiguous {
		return ErrAmbiguous
	}
	return ErrUnresolved
}

// ConversionError reports text that could not be converted to the target type.
// It is returned as a value and never aborts the caller.
type ConversionError struct {
	Text  string // the offending text (copied, never aliases the input)
	Type  string // target type name
	Index int    // occurrence index the value was parsed for
	Err   error  // underlying cause
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("invalid value %q for %s", e.Text, e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError builds a ConversionError for text s and type t.
// If err already is a ConversionError for the same type it is returned as-is.
func NewConversionError(s strslice.Slice, t reflect.Type, index int, err error) *ConversionError {
	name := TypeName(t)
	var ce *ConversionError
	if errors.As(err, &ce) && ce.Type == name && ce.Text == string(s) {
		return ce
	}
	return &ConversionError{
		Text:  strings.Clone(string(s)),
		Type:  name,
		Index: index,
		Err:   err,
	}
}

// TypeName returns the display name used in diagnostics for t.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
