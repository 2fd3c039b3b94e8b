package value

import (
	"encoding"

	"github.com/dzonerzy/snapopt/strslice"
)

// Text returns a Parser for any T whose pointer implements
// encoding.TextUnmarshaler. Values are formatted with MarshalText when T
// implements encoding.TextMarshaler.
func Text[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}]() Parser[T] {
	return textParser[T, PT]{}
}

type textParser[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}] struct{}

func (textParser[T, PT]) Parse(s strslice.Slice, _ int) (T, error) {
	var v T
	err := PT(&v).UnmarshalText([]byte(s))
	return v, err
}

func (textParser[T, PT]) Format(v T) string {
	if m, ok := any(v).(encoding.TextMarshaler); ok {
		if b, err := m.MarshalText(); err == nil {
			return string(b)
		}
	}
	if m, ok := any(&v).(encoding.TextMarshaler); ok {
		if b, err := m.MarshalText(); err == nil {
			return string(b)
		}
	}
	return ""
}
