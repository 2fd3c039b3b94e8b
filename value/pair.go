package value

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/dzonerzy/snapopt/strslice"
)

var errNoSeparator = errors.New("expected key=value")

// Pair is the element type of associative destinations. Its text form is
// "key=value", split at the first '='. A registry resolves a Pair by
// resolving both halves in itself, so a Pair whose key or value has no
// parser is an Unresolved binding rather than a parse-time failure.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// pairType is implemented by every Pair instantiation.
type pairType interface {
	halfTypes() (key, val reflect.Type)
	halves() (key, val any)
	build(key, val any) any
}

func (Pair[K, V]) halfTypes() (reflect.Type, reflect.Type) {
	return reflect.TypeFor[K](), reflect.TypeFor[V]()
}

func (p Pair[K, V]) halves() (any, any) { return p.Key, p.Value }

func (Pair[K, V]) build(key, val any) any {
	return Pair[K, V]{Key: key.(K), Value: val.(V)}
}

// UnmarshalOption implements Unmarshaler using the Default registry.
func (p *Pair[K, V]) UnmarshalOption(s strslice.Slice, index int) error {
	e, err := Default.pairEntry(reflect.TypeFor[Pair[K, V]](), *p)
	if err != nil {
		return err
	}
	v, err := e.parse(s, index)
	if err != nil {
		return err
	}
	*p = v.(Pair[K, V])
	return nil
}

// FormatOption implements Marshaler using the Default registry.
func (p Pair[K, V]) FormatOption() string {
	e, err := Default.pairEntry(reflect.TypeFor[Pair[K, V]](), p)
	if err != nil {
		return fmt.Sprint(p.Key) + "=" + fmt.Sprint(p.Value)
	}
	return e.format(p)
}

func asPair(t reflect.Type) (pairType, bool) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, false
	}
	p, ok := reflect.Zero(t).Interface().(pairType)
	return p, ok
}

// pairEntry builds the strategy for Pair type t with both halves resolved in r.
func (r *Registry) pairEntry(t reflect.Type, p pairType) (*entry, error) {
	kt, vt := p.halfTypes()
	kb, err := r.LookupType(kt)
	if err != nil {
		return nil, halfError(err, "key", t)
	}
	vb, err := r.LookupType(vt)
	if err != nil {
		return nil, halfError(err, "value", t)
	}

	return &entry{
		typ: t,
		parse: func(s strslice.Slice, index int) (any, error) {
			key, val, found := s.Cut("=")
			if !found {
				return nil, errNoSeparator
			}
			k, err := kb.Parse(key, index)
			if err != nil {
				return nil, fmt.Errorf("pair key: %w", err)
			}
			v, err := vb.Parse(val, index)
			if err != nil {
				return nil, fmt.Errorf("pair value: %w", err)
			}
			return p.build(k, v), nil
		},
		format: func(v any) string {
			k, val := v.(pairType).halves()
			return formatHalf(kb, k) + "=" + formatHalf(vb, val)
		},
	}, nil
}

func halfError(err error, half string, t reflect.Type) error {
	var be *BindingError
	if !errors.As(err, &be) {
		return err
	}
	out := *be
	out.Detail = half + " of " + TypeName(t)
	return &out
}

func formatHalf(b Binding, v any) string {
	if s, ok := b.Format(v); ok {
		return s
	}
	return fmt.Sprint(v)
}
