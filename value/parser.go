// Package value converts raw option text into typed values.
//
// Every target type resolves to exactly one strategy, either a Parser
// registered for the type or an UnmarshalOption method on its pointer.
// Registering a second strategy for a type is rejected with a BindingError
// of kind Ambiguous; add-on packages register from init so the conflict
// surfaces at program start.
//
// Builtin strategies cover string, strslice.Slice, bool, every integer width,
// float32, float64 and time.Duration.
package value

import (
	"github.com/dzonerzy/snapopt/strslice"
)

// Parser converts option text to a T. index is the zero-based number of
// values the option has already received; stateless types ignore it.
//
// Implementations must not retain s and must not panic on malformed input.
type Parser[T any] interface {
	Parse(s strslice.Slice, index int) (T, error)
}

// Func adapts a plain function to Parser.
type Func[T any] func(s strslice.Slice, index int) (T, error)

// Parse calls f.
func (f Func[T]) Parse(s strslice.Slice, index int) (T, error) {
	return f(s, index)
}

// Formatter renders a T back to text that its Parser accepts.
type Formatter[T any] interface {
	Format(v T) string
}

// Unmarshaler is implemented by pointer types that parse themselves.
type Unmarshaler interface {
	UnmarshalOption(s strslice.Slice, index int) error
}

// Marshaler is the formatting counterpart of Unmarshaler.
type Marshaler interface {
	FormatOption() string
}

// AllowedValuer is implemented by parsers that accept a fixed vocabulary.
type AllowedValuer interface {
	AllowedValues() []string
}

// formatFunc pairs a parser with a formatting function.
type formatFunc[T any] struct {
	Parser[T]
	format func(T) string
}

func (f formatFunc[T]) Format(v T) string { return f.format(v) }

// WithFormat attaches a formatting function to p.
func WithFormat[T any](p Parser[T], format func(T) string) Parser[T] {
	return formatFunc[T]{Parser: p, format: format}
}
