// Package envconfig loads environment variables into structs with
// caarlos0/env, parsing field values through the snapopt value registry so
// flags and environment accept the same syntax.
package envconfig

import (
	"maps"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dzonerzy/snapopt/strslice"
	"github.com/dzonerzy/snapopt/value"
)

var unmarshalerType = reflect.TypeFor[value.Unmarshaler]()

// FuncMap returns env parsers for every type registered in value.Default,
// plus the extra types, which may be self-parsing ones.
func FuncMap(extra ...reflect.Type) map[reflect.Type]env.ParserFunc {
	return FuncMapFor(value.Default, extra...)
}

// FuncMapFor is like FuncMap for an explicit registry.
func FuncMapFor(r *value.Registry, extra ...reflect.Type) map[reflect.Type]env.ParserFunc {
	types := append(r.Types(), extra...)
	funcs := make(map[reflect.Type]env.ParserFunc, len(types))
	for _, t := range types {
		b, err := r.LookupType(t)
		if err != nil {
			continue
		}
		funcs[t] = func(v string) (any, error) {
			return b.Parse(strslice.Of(v), 0)
		}
	}
	return funcs
}

// Parse fills cfg from the process environment.
func Parse(cfg any) error {
	return ParseWithOptions(cfg, env.Options{})
}

// ParseWithOptions is like Parse with explicit env options. Field types
// whose pointer implements value.Unmarshaler are picked up from cfg.
// Parsers in opts.FuncMap take precedence over the registry.
func ParseWithOptions(cfg any, opts env.Options) error {
	funcs := FuncMap(selfParsing(reflect.TypeOf(cfg), nil)...)
	maps.Copy(funcs, opts.FuncMap)
	opts.FuncMap = funcs
	return env.ParseWithOptions(cfg, opts)
}

// selfParsing collects the self-parsing types reachable from struct fields.
func selfParsing(t reflect.Type, seen map[reflect.Type]bool) []reflect.Type {
	if seen == nil {
		seen = make(map[reflect.Type]bool)
	}
	for t != nil && (t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice) {
		t = t.Elem()
	}
	if t == nil || seen[t] {
		return nil
	}
	seen[t] = true

	if t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(unmarshalerType) {
		return []reflect.Type{t}
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []reflect.Type
	for i := range t.NumField() {
		if f := t.Field(i); f.IsExported() {
			out = append(out, selfParsing(f.Type, seen)...)
		}
	}
	return out
}

// Load reads the given dotenv files (".env" when none are given) and fills
// cfg from them, with the process environment taking precedence. Missing
// files are an error only when named explicitly.
func Load(cfg any, files ...string) error {
	environ := make(map[string]string)

	if len(files) == 0 {
		if fileEnv, err := godotenv.Read(); err == nil {
			maps.Copy(environ, fileEnv)
		}
	} else {
		fileEnv, err := godotenv.Read(files...)
		if err != nil {
			return err
		}
		maps.Copy(environ, fileEnv)
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return ParseWithOptions(cfg, env.Options{Environment: environ})
}
