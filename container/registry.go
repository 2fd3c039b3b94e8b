package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/dzonerzy/snapopt/value"
)

type entry struct {
	typ    reflect.Type
	elem   reflect.Type
	insert any // func(*C, any)
	scalar bool
}

// Registry maps destination types to their traits. Each registry checks
// element types against one value registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*entry
	values  *value.Registry
}

// NewRegistry returns a registry with the builtin traits, resolving element
// types through values.
func NewRegistry(values *value.Registry) *Registry {
	r := &Registry{
		entries: make(map[reflect.Type]*entry, 16),
		values:  values,
	}
	registerBuiltins(r)
	return r
}

// Default is backed by value.Default.
var Default = NewRegistry(value.Default)

// Values returns the value registry r resolves element types through.
func (r *Registry) Values() *value.Registry { return r.values }

// Register binds t to C in the Default registry.
func Register[C, E any](t Trait[C, E]) error {
	return RegisterIn(Default, t)
}

// MustRegister is like Register but panics on error.
func MustRegister[C, E any](t Trait[C, E]) {
	if err := Register(t); err != nil {
		panic(err)
	}
}

// RegisterIn binds t to C in r. A second trait for the same C is ambiguous.
func RegisterIn[C, E any](r *Registry, t Trait[C, E]) error {
	ct := reflect.TypeFor[C]()
	if t == nil {
		return &value.BindingError{Kind: value.Unresolved, Type: ct, Registry: "container", Detail: "nil trait"}
	}

	e := &entry{
		typ:  ct,
		elem: reflect.TypeFor[E](),
		insert: func(dst *C, elem any) {
			t.Insert(dst, elem.(E))
		},
		scalar: IsScalar(t),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[ct]; exists {
		return &value.BindingError{Kind: value.Ambiguous, Type: ct, Registry: "container", Detail: "trait already registered"}
	}
	r.entries[ct] = e
	return nil
}

// Binding is a resolved trait for destinations of type C.
type Binding[C any] struct {
	elem   reflect.Type
	insert func(dst *C, elem any)
	scalar bool
}

// Elem returns the element type the value parser must produce.
func (b Binding[C]) Elem() reflect.Type { return b.elem }

// Insert stores elem, which must have type Elem(), into dst.
func (b Binding[C]) Insert(dst *C, elem any) { b.insert(dst, elem) }

// IsScalar reports whether the destination holds a single value.
func (b Binding[C]) IsScalar() bool { return b.scalar }

// Lookup resolves the trait for C in the Default registry.
func Lookup[C any]() (Binding[C], error) {
	return LookupIn[C](Default)
}

// LookupIn resolves the trait for C in r. Without a registered trait, a C
// that has a value parser of its own gets a scalar binding.
func LookupIn[C any](r *Registry) (Binding[C], error) {
	ct := reflect.TypeFor[C]()

	r.mu.RLock()
	e, ok := r.entries[ct]
	r.mu.RUnlock()

	if ok {
		return Binding[C]{elem: e.elem, insert: e.insert.(func(*C, any)), scalar: e.scalar}, nil
	}
	if r.values.Has(ct) {
		return Binding[C]{
			elem:   ct,
			insert: func(dst *C, elem any) { *dst = elem.(C) },
			scalar: true,
		}, nil
	}
	return Binding[C]{}, &value.BindingError{Kind: value.Unresolved, Type: ct, Registry: "container"}
}

// Verify reports every registered trait whose element type has no value
// parser, including map traits whose key or value type has none. Engines call it before parsing so that gaps surface at startup.
func (r *Registry) Verify() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, e := range r.entries {
		if _, err := r.values.LookupType(e.elem); err != nil {
			errs = append(errs, fmt.Errorf("element of %s: %w", value.TypeName(e.typ), err))
		}
	}
	return errors.Join(errs...)
}

// Verify checks the Default registry.
func Verify() error { return Default.Verify() }

func registerBuiltins(r *Registry) {
	mustIn(r, Sequence[string]())
	mustIn(r, Sequence[int]())
	mustIn(r, Sequence[int64]())
	mustIn(r, Sequence[uint]())
	mustIn(r, Sequence[float64]())
	mustIn(r, Sequence[bool]())
	mustIn(r, Sequence[time.Duration]())

	mustIn(r, Map[string, string]())
	mustIn(r, Map[string, int]())
	mustIn(r, Map[string, bool]())
	mustIn(r, MultiMap[string, string]())

	mustIn(r, Set[string]())
	mustIn(r, Set[int]())
}

func mustIn[C, E any](r *Registry, t Trait[C, E]) {
	if err := RegisterIn(r, t); err != nil {
		panic(err)
	}
}
