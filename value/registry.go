package value

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/dzonerzy/snapopt/strslice"
)

var (
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
	marshalerType   = reflect.TypeFor[Marshaler]()
)

// entry is one registered strategy. typed holds the Parser[T] when the
// strategy was registered through RegisterIn.
type entry struct {
	typ     reflect.Type
	typed   any
	parse   func(strslice.Slice, int) (any, error)
	format  func(any) string
	allowed func() []string
}

// Registry maps target types to their parsing strategies. Lookups are safe
// for concurrent use; registration is expected to finish before parsing starts.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*entry
}

// NewRegistry returns a registry holding only the builtin strategies.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[reflect.Type]*entry, 32)}
	registerBuiltins(r)
	return r
}

// Default is the process-wide registry used by the package-level functions.
var Default = NewRegistry()

// Register binds p to T in the Default registry.
func Register[T any](p Parser[T]) error {
	return RegisterIn(Default, p)
}

// MustRegister is like Register but panics on error. Meant for init functions.
func MustRegister[T any](p Parser[T]) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

// RegisterIn binds p to T in r. It fails with an Ambiguous BindingError when
// T already has a parser or when *T implements Unmarshaler.
func RegisterIn[T any](r *Registry, p Parser[T]) error {
	t := reflect.TypeFor[T]()
	if p == nil {
		return fmt.Errorf("value: nil parser for %s", TypeName(t))
	}
	if implementsUnmarshaler(t) {
		return &BindingError{Kind: Ambiguous, Type: t, Registry: "value", Detail: "type implements UnmarshalOption"}
	}
	return r.add(newEntry(t, p))
}

func (r *Registry) add(e *entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.typ]; exists {
		return &BindingError{Kind: Ambiguous, Type: e.typ, Registry: "value", Detail: "parser already registered"}
	}
	r.entries[e.typ] = e
	return nil
}

func newEntry[T any](t reflect.Type, p Parser[T]) *entry {
	e := &entry{
		typ:   t,
		typed: p,
		parse: func(s strslice.Slice, index int) (any, error) {
			v, err := p.Parse(s, index)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
	if f, ok := p.(Formatter[T]); ok {
		e.format = func(v any) string { return f.Format(v.(T)) }
	}
	if a, ok := p.(AllowedValuer); ok {
		e.allowed = a.AllowedValues
	}
	return e
}

func implementsUnmarshaler(t reflect.Type) bool {
	return t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(unmarshalerType)
}

// unmarshalerEntry builds a strategy for a type whose pointer parses itself.
func unmarshalerEntry(t reflect.Type) *entry {
	e := &entry{
		typ: t,
		parse: func(s strslice.Slice, index int) (any, error) {
			ptr := reflect.New(t)
			if err := ptr.Interface().(Unmarshaler).UnmarshalOption(s, index); err != nil {
				return nil, err
			}
			return ptr.Elem().Interface(), nil
		},
	}
	if t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType) {
		e.format = func(v any) string {
			if m, ok := v.(Marshaler); ok {
				return m.FormatOption()
			}
			ptr := reflect.New(t)
			ptr.Elem().Set(reflect.ValueOf(v))
			return ptr.Interface().(Marshaler).FormatOption()
		}
	}
	return e
}

func (r *Registry) resolve(t reflect.Type) (*entry, error) {
	r.mu.RLock()
	e, ok := r.entries[t]
	r.mu.RUnlock()

	if ok {
		return e, nil
	}
	if p, ok := asPair(t); ok {
		return r.pairEntry(t, p)
	}
	if t != nil && implementsUnmarshaler(t) {
		return unmarshalerEntry(t), nil
	}
	return nil, &BindingError{Kind: Unresolved, Type: t, Registry: "value"}
}

// Binding is the type-erased form of a resolved strategy, used by code that
// only knows the target type at run time.
type Binding struct {
	e *entry
}

// Type returns the target type.
func (b Binding) Type() reflect.Type { return b.e.typ }

// Parse converts s. Failures are always *ConversionError.
func (b Binding) Parse(s strslice.Slice, index int) (any, error) {
	v, err := b.e.parse(s, index)
	if err != nil {
		return nil, NewConversionError(s, b.e.typ, index, err)
	}
	return v, nil
}

// Format renders v if the strategy has a formatter.
func (b Binding) Format(v any) (string, bool) {
	if b.e.format == nil {
		return "", false
	}
	return b.e.format(v), true
}

// AllowedValues returns the accepted vocabulary, or nil when unrestricted.
func (b Binding) AllowedValues() []string {
	if b.e.allowed == nil {
		return nil
	}
	return b.e.allowed()
}

// LookupType resolves the strategy for t.
func (r *Registry) LookupType(t reflect.Type) (Binding, error) {
	e, err := r.resolve(t)
	if err != nil {
		return Binding{}, err
	}
	return Binding{e: e}, nil
}

// Has reports whether t resolves in r.
func (r *Registry) Has(t reflect.Type) bool {
	_, err := r.resolve(t)
	return err == nil
}

// Registered returns the names of the explicitly registered types, sorted.
func (r *Registry) Registered() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for t := range r.entries {
		names = append(names, TypeName(t))
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Types returns the explicitly registered types, ordered by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	types := make([]reflect.Type, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	r.mu.RUnlock()

	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(TypeName(a), TypeName(b))
	})
	return types
}

// LookupType resolves t in the Default registry.
func LookupType(t reflect.Type) (Binding, error) {
	return Default.LookupType(t)
}

// Lookup resolves the parser for T in the Default registry.
func Lookup[T any]() (Parser[T], error) {
	return LookupIn[T](Default)
}

// LookupIn resolves the parser for T in r. The returned parser wraps every
// failure in a *ConversionError and also implements Formatter[T] and
// AllowedValuer; Format falls back to fmt.Sprint when the strategy has no
// formatter.
func LookupIn[T any](r *Registry) (Parser[T], error) {
	e, err := r.resolve(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	var p Parser[T]
	if e.typed != nil {
		p = e.typed.(Parser[T])
	} else {
		p = erased[T]{e: e}
	}
	return checked[T]{p: p, e: e}, nil
}

// Parse converts s to T using the Default registry.
func Parse[T any](s strslice.Slice, index int) (T, error) {
	p, err := Lookup[T]()
	if err != nil {
		var zero T
		return zero, err
	}
	return p.Parse(s, index)
}

// Format renders v using the formatter registered for T in the Default registry.
func Format[T any](v T) (string, error) {
	p, err := Lookup[T]()
	if err != nil {
		return "", err
	}
	return p.(Formatter[T]).Format(v), nil
}

type checked[T any] struct {
	p Parser[T]
	e *entry
}

func (c checked[T]) Parse(s strslice.Slice, index int) (T, error) {
	v, err := c.p.Parse(s, index)
	if err != nil {
		var zero T
		return zero, NewConversionError(s, c.e.typ, index, err)
	}
	return v, nil
}

func (c checked[T]) Format(v T) string {
	if c.e.format == nil {
		return fmt.Sprint(v)
	}
	return c.e.format(v)
}

func (c checked[T]) AllowedValues() []string {
	if c.e.allowed == nil {
		return nil
	}
	return c.e.allowed()
}

// erased adapts a strategy that was not registered as a Parser[T], such as
// a Pair or a self-parsing type.
type erased[T any] struct {
	e *entry
}

func (x erased[T]) Parse(s strslice.Slice, index int) (T, error) {
	v, err := x.e.parse(s, index)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
