// Package bind joins a value parser and a container trait into a Target
// that accepts option text. A Target is the unit the cmdline engine and
// the compat adapters drive.
package bind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dzonerzy/snapopt/container"
	"github.com/dzonerzy/snapopt/strslice"
	"github.com/dzonerzy/snapopt/value"
)

// Target parses option text and stores the results into a destination.
// Values reach the destination only when parsing succeeds.
type Target struct {
	name   string
	dst    reflect.Type
	elem   reflect.Type
	scalar bool
	count  int

	sep      string
	validate func(any) error

	parse   func(s strslice.Slice, index int) (any, error)
	insert  func(v any)
	current func() any
	format  func(v any) (string, bool)
	allowed func() []string
}

// Option configures a Target.
type Option func(*config)

type config struct {
	name     string
	sep      string
	validate func(any) error
	registry *container.Registry
}

// Name sets the name used in diagnostics.
func Name(name string) Option {
	return func(c *config) { c.name = name }
}

// CommaSeparated splits every argument at sep and applies each piece.
func CommaSeparated(sep string) Option {
	return func(c *config) { c.sep = sep }
}

// Validate runs fn on each parsed value before it is stored. A non-nil
// error rejects the value as if parsing had failed.
func Validate(fn func(any) error) Option {
	return func(c *config) { c.validate = fn }
}

// Registry resolves strategies in r instead of container.Default.
func Registry(r *container.Registry) Option {
	return func(c *config) { c.registry = r }
}

func newConfig(opts []Option) config {
	c := config{registry: container.Default}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// New returns a Target for dst using the registered trait for C and the
// registered parser for its element type.
func New[C any](dst *C, opts ...Option) (*Target, error) {
	c := newConfig(opts)

	cb, err := container.LookupIn[C](c.registry)
	if err != nil {
		return nil, err
	}
	vb, err := c.registry.Values().LookupType(cb.Elem())
	if err != nil {
		return nil, err
	}

	t := newTarget[C](dst, c)
	t.elem = cb.Elem()
	t.scalar = cb.IsScalar()
	t.parse = vb.Parse
	t.insert = func(v any) { cb.Insert(dst, v) }
	t.format = vb.Format
	t.allowed = vb.AllowedValues
	return t, nil
}

// Must is like New but panics on error.
func Must[C any](dst *C, opts ...Option) *Target {
	t, err := New(dst, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// With returns a Target using explicit strategies, bypassing the registries.
func With[C, E any](dst *C, trait container.Trait[C, E], p value.Parser[E], opts ...Option) *Target {
	c := newConfig(opts)
	et := reflect.TypeFor[E]()

	t := newTarget[C](dst, c)
	t.elem = et
	t.scalar = container.IsScalar(trait)
	t.parse = func(s strslice.Slice, index int) (any, error) {
		v, err := p.Parse(s, index)
		if err != nil {
			return nil, value.NewConversionError(s, et, index, err)
		}
		return v, nil
	}
	t.insert = func(v any) { trait.Insert(dst, v.(E)) }
	if f, ok := p.(value.Formatter[E]); ok {
		t.format = func(v any) (string, bool) { return f.Format(v.(E)), true }
	}
	if a, ok := p.(value.AllowedValuer); ok {
		t.allowed = a.AllowedValues
	}
	return t
}

func newTarget[C any](dst *C, c config) *Target {
	return &Target{
		name:     c.name,
		dst:      reflect.TypeFor[C](),
		sep:      c.sep,
		validate: c.validate,
		current:  func() any { return *dst },
	}
}

// Set parses text and stores the result. It satisfies flag.Value,
// pflag.Value and cli.Generic.
func (t *Target) Set(text string) error {
	return t.Apply(strslice.Of(text))
}

// Apply parses s and stores the result. With CommaSeparated every piece is
// parsed before any of them is stored, so a bad piece leaves the
// destination untouched. Failures are *value.ConversionError.
func (t *Target) Apply(s strslice.Slice) error {
	if t.sep == "" {
		v, err := t.convert(s, t.count)
		if err != nil {
			return err
		}
		t.store(v)
		return nil
	}

	var pending []any
	for piece := range s.Split(strslice.Of(t.sep)) {
		v, err := t.convert(piece, t.count+len(pending))
		if err != nil {
			return err
		}
		pending = append(pending, v)
	}
	for _, v := range pending {
		t.store(v)
	}
	return nil
}

// ApplyAll applies every token, collecting the failures. Tokens that parse
// are stored even when others fail.
func (t *Target) ApplyAll(tokens []string) []error {
	var errs []error
	for _, tok := range tokens {
		if err := t.Set(tok); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (t *Target) convert(s strslice.Slice, index int) (any, error) {
	v, err := t.parse(s, index)
	if err != nil {
		return nil, err
	}
	if t.validate != nil {
		if err := t.validate(v); err != nil {
			return nil, value.NewConversionError(s, t.elem, index, err)
		}
	}
	return v, nil
}

func (t *Target) store(v any) {
	t.insert(v)
	t.count++
}

// Name returns the diagnostic name, which may be empty.
func (t *Target) Name() string { return t.name }

// Count returns the number of values stored so far.
func (t *Target) Count() int { return t.count }

// Type returns the element type name. It satisfies pflag.Value.
func (t *Target) Type() string { return value.TypeName(t.elem) }

// Elem returns the element type.
func (t *Target) Elem() reflect.Type { return t.elem }

// IsScalar reports whether the destination holds a single value.
func (t *Target) IsScalar() bool { return t.scalar }

// IsBool reports whether the destination is a plain bool, which lets
// engines accept the option without an argument.
func (t *Target) IsBool() bool {
	return t.scalar && t.elem == reflect.TypeFor[bool]()
}

// AllowedValues returns the accepted vocabulary, or nil when unrestricted.
func (t *Target) AllowedValues() []string {
	if t.allowed == nil {
		return nil
	}
	return t.allowed()
}

// String formats the current destination value. Slices are rendered as
// "[a,b]"; other containers fall back to fmt.
func (t *Target) String() string {
	if t == nil || t.current == nil {
		return ""
	}

	cur := t.current()
	if t.scalar {
		return t.formatOne(cur)
	}

	rv := reflect.ValueOf(cur)
	if rv.Kind() != reflect.Slice || rv.Type().Elem() != t.elem {
		return fmt.Sprint(cur)
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = t.formatOne(rv.Index(i).Interface())
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (t *Target) formatOne(v any) string {
	if t.format != nil {
		if s, ok := t.format(v); ok {
			return s
		}
	}
	return fmt.Sprint(v)
}

// DestType returns the destination type.
func (t *Target) DestType() reflect.Type { return t.dst }
