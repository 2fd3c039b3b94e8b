// Package urfavecli exposes bind targets as urfave/cli v2 generic flags.
package urfavecli

import (
	"github.com/urfave/cli/v2"

	"github.com/dzonerzy/snapopt/bind"
)

// Flag wraps t in a cli.GenericFlag.
func Flag(name string, t *bind.Target, aliases ...string) *cli.GenericFlag {
	return &cli.GenericFlag{
		Name:    name,
		Aliases: aliases,
		Value:   t,
	}
}

// Bind creates a target for dst and wraps it in a cli.GenericFlag. Usage,
// EnvVars and Required can be set on the returned flag.
func Bind[C any](dst *C, name string, opts ...bind.Option) (*cli.GenericFlag, error) {
	t, err := bind.New(dst, append([]bind.Option{bind.Name(name)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return Flag(name, t), nil
}

// MustBind is like Bind but panics on error.
func MustBind[C any](dst *C, name string, opts ...bind.Option) *cli.GenericFlag {
	f, err := Bind(dst, name, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Target returns the bind target behind a flag created by this package.
func Target(f *cli.GenericFlag) (*bind.Target, bool) {
	if f == nil {
		return nil, false
	}
	t, ok := f.Value.(*bind.Target)
	return t, ok
}
