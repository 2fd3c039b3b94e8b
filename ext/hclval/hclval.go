// Package hclval parses option text as an HCL expression, so structured
// values can be given on the command line:
//
//	--tags='["a", "b"]' --limits='{cpu = 2, mem = "4G"}'
//
// Expressions are evaluated with no variables and no functions. Bare words
// are not strings; quote them.
package hclval

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/dzonerzy/snapopt/container"
	"github.com/dzonerzy/snapopt/strslice"
	"github.com/dzonerzy/snapopt/value"
)

const filename = "<option>"

// Eval parses and evaluates s.
func Eval(s strslice.Slice) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(s), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return v, nil
}

// Format renders v as HCL source.
func Format(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	if !v.IsWhollyKnown() {
		return "(unknown)"
	}
	return string(hclwrite.TokensForValue(v).Bytes())
}

// Parser evaluates HCL expressions into cty values.
type Parser struct{}

func (Parser) Parse(s strslice.Slice, _ int) (cty.Value, error) { return Eval(s) }
func (Parser) Format(v cty.Value) string                        { return Format(v) }

// Typed returns a parser that converts the result to ty, e.g.
// cty.List(cty.String).
func Typed(ty cty.Type) value.Parser[cty.Value] {
	return value.WithFormat(value.Func[cty.Value](func(s strslice.Slice, _ int) (cty.Value, error) {
		v, err := Eval(s)
		if err != nil {
			return cty.NilVal, err
		}
		return convert.Convert(v, ty)
	}), Format)
}

// Into returns a parser decoding the expression into a Go value of type T,
// using the cty type implied by T.
func Into[T any]() value.Parser[T] {
	return value.Func[T](func(s strslice.Slice, _ int) (T, error) {
		var out T
		ty, err := gocty.ImpliedType(out)
		if err != nil {
			return out, err
		}
		v, err := Eval(s)
		if err != nil {
			return out, err
		}
		if v, err = convert.Convert(v, ty); err != nil {
			return out, err
		}
		err = gocty.FromCtyValue(v, &out)
		return out, err
	})
}

func init() {
	value.MustRegister[cty.Value](Parser{})
	container.MustRegister(container.Sequence[cty.Value]())
	container.MustRegister(container.Map[string, cty.Value]())
}
