package value

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dzonerzy/snapopt/strslice"
)

// Entry is one name of a Mapping vocabulary.
type Entry[T any] struct {
	Name  string
	Value T
}

// Mapping parses a fixed vocabulary of names, typically into an enum.
type Mapping[T any] struct {
	entries []Entry[T]
	name    string
	fold    bool
}

// NewMapping returns a parser accepting exactly the given names. Name
// comparison is case-sensitive.
func NewMapping[T any](entries ...Entry[T]) *Mapping[T] {
	return &Mapping[T]{entries: entries}
}

// WithName sets the text used when the argument is empty, so "-O" alone
// can select the entry named "O". It returns m for chaining.
func (m *Mapping[T]) WithName(name string) *Mapping[T] {
	m.name = name
	return m
}

// IgnoreCase makes name comparison use Unicode case folding, so "Straße"
// also matches "STRASSE". It returns m for chaining.
func (m *Mapping[T]) IgnoreCase() *Mapping[T] {
	m.fold = true
	return m
}

// Parse looks s up in the vocabulary.
func (m *Mapping[T]) Parse(s strslice.Slice, _ int) (T, error) {
	key := string(s)
	if key == "" {
		key = m.name
	}
	for _, e := range m.entries {
		if m.equal(e.Name, key) {
			return e.Value, nil
		}
	}

	var zero T
	return zero, fmt.Errorf("%w (allowed: %s)", ErrNotAllowed, strings.Join(m.AllowedValues(), ", "))
}

// Format returns the name of the first entry equal to v.
func (m *Mapping[T]) Format(v T) string {
	for _, e := range m.entries {
		if reflect.DeepEqual(e.Value, v) {
			return e.Name
		}
	}
	return fmt.Sprint(v)
}

// AllowedValues returns the vocabulary in declaration order.
func (m *Mapping[T]) AllowedValues() []string {
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.Name
	}
	return names
}

func (m *Mapping[T]) equal(name, key string) bool {
	if !m.fold {
		return name == key
	}
	// Casers are stateful and must not be shared across goroutines.
	fold := cases.Fold()
	return fold.String(name) == fold.String(key)
}
