// Package pflagx registers bind targets on spf13/pflag flag sets, which
// also makes them usable as cobra command flags.
package pflagx

import (
	"github.com/spf13/pflag"

	"github.com/dzonerzy/snapopt/bind"
)

// Var registers t on fs. Bool targets accept a bare --name, like pflag's
// own bool flags.
func Var(fs *pflag.FlagSet, t *bind.Target, name, short, usage string) *pflag.Flag {
	f := fs.VarPF(t, name, short, usage)
	if t.IsBool() {
		f.NoOptDefVal = "true"
	}
	return f
}

// Bind creates a target for dst and registers it on fs.
func Bind[C any](fs *pflag.FlagSet, dst *C, name, short, usage string, opts ...bind.Option) (*pflag.Flag, error) {
	t, err := bind.New(dst, append([]bind.Option{bind.Name(name)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return Var(fs, t, name, short, usage), nil
}

// MustBind is like Bind but panics on error.
func MustBind[C any](fs *pflag.FlagSet, dst *C, name, short, usage string, opts ...bind.Option) *pflag.Flag {
	f, err := Bind(fs, dst, name, short, usage, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Target returns the bind target behind a flag registered by this package.
func Target(f *pflag.Flag) (*bind.Target, bool) {
	if f == nil {
		return nil, false
	}
	t, ok := f.Value.(*bind.Target)
	return t, ok
}
