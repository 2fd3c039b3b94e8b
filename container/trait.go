// Package container describes how parsed values are stored into a
// destination. A destination of type C receives elements of type E through
// a Trait; the element type is what the value package parses.
package container

import (
	"github.com/dzonerzy/snapopt/value"
)

// Trait inserts one parsed element into a destination.
type Trait[C, E any] interface {
	Insert(dst *C, elem E)
}

// Func adapts a plain function to Trait.
type Func[C, E any] func(dst *C, elem E)

// Insert calls f.
func (f Func[C, E]) Insert(dst *C, elem E) { f(dst, elem) }

// scalarTrait marks traits whose destination holds a single value.
type scalarTrait interface {
	isScalar() bool
}

type scalar[T any] struct{}

func (scalar[T]) Insert(dst *T, elem T) { *dst = elem }
func (scalar[T]) isScalar() bool        { return true }

// Scalar replaces the destination on every insert; the last write wins.
func Scalar[T any]() Trait[T, T] { return scalar[T]{} }

type sequence[T any] struct{}

func (sequence[T]) Insert(dst *[]T, elem T) { *dst = append(*dst, elem) }

// Sequence appends to a slice in arrival order.
func Sequence[T any]() Trait[[]T, T] { return sequence[T]{} }

type mapping[K comparable, V any] struct{}

func (mapping[K, V]) Insert(dst *map[K]V, elem value.Pair[K, V]) {
	if *dst == nil {
		*dst = make(map[K]V)
	}
	(*dst)[elem.Key] = elem.Value
}

// Map stores key=value pairs; a repeated key keeps the last value.
func Map[K comparable, V any]() Trait[map[K]V, value.Pair[K, V]] { return mapping[K, V]{} }

type multiMap[K comparable, V any] struct{}

func (multiMap[K, V]) Insert(dst *map[K][]V, elem value.Pair[K, V]) {
	if *dst == nil {
		*dst = make(map[K][]V)
	}
	(*dst)[elem.Key] = append((*dst)[elem.Key], elem.Value)
}

// MultiMap stores key=value pairs keeping every value of a repeated key.
func MultiMap[K comparable, V any]() Trait[map[K][]V, value.Pair[K, V]] { return multiMap[K, V]{} }

type set[T comparable] struct{}

func (set[T]) Insert(dst *map[T]struct{}, elem T) {
	if *dst == nil {
		*dst = make(map[T]struct{})
	}
	(*dst)[elem] = struct{}{}
}

// Set stores distinct elements.
func Set[T comparable]() Trait[map[T]struct{}, T] { return set[T]{} }

type orderedSet[T comparable] struct{}

func (orderedSet[T]) Insert(dst *[]T, elem T) {
	for _, v := range *dst {
		if v == elem {
			return
		}
	}
	*dst = append(*dst, elem)
}

// OrderedSet appends elements not already present, keeping first-seen order.
func OrderedSet[T comparable]() Trait[[]T, T] { return orderedSet[T]{} }

// IsScalar reports whether t replaces its destination rather than adding to it.
func IsScalar(t any) bool {
	s, ok := t.(scalarTrait)
	return ok && s.isScalar()
}
