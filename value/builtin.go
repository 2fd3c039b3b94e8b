package value

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dzonerzy/snapopt/strslice"
)

type stringParser struct{}

func (stringParser) Parse(s strslice.Slice, _ int) (string, error) {
	return strings.Clone(string(s)), nil
}

func (stringParser) Format(v string) string { return v }

// sliceParser copies the text so the stored Slice never aliases argv.
type sliceParser struct{}

func (sliceParser) Parse(s strslice.Slice, _ int) (strslice.Slice, error) {
	return strslice.Of(strings.Clone(string(s))), nil
}

func (sliceParser) Format(v strslice.Slice) string { return v.String() }

var errNotBool = errors.New("not a valid boolean (want true/false, yes/no, on/off, 1/0)")

type boolParser struct{}

// Parse treats empty text as true so a bare "--flag=" enables the flag.
func (boolParser) Parse(s strslice.Slice, _ int) (bool, error) {
	switch {
	case s.Empty():
		return true, nil
	case matchesWord(s, "1"), matchesWord(s, "t"), matchesWord(s, "true"),
		matchesWord(s, "yes"), matchesWord(s, "y"), matchesWord(s, "on"):
		return true, nil
	case matchesWord(s, "0"), matchesWord(s, "f"), matchesWord(s, "false"),
		matchesWord(s, "no"), matchesWord(s, "n"), matchesWord(s, "off"):
		return false, nil
	}
	return false, errNotBool
}

func (boolParser) Format(v bool) string { return strconv.FormatBool(v) }

func registerBuiltins(r *Registry) {
	mustIn(r, Parser[string](stringParser{}))
	mustIn(r, Parser[strslice.Slice](sliceParser{}))
	mustIn(r, Parser[bool](boolParser{}))

	mustIn(r, Parser[int](intParser[int]{bits: strconv.IntSize}))
	mustIn(r, Parser[int8](intParser[int8]{bits: 8}))
	mustIn(r, Parser[int16](intParser[int16]{bits: 16}))
	mustIn(r, Parser[int32](intParser[int32]{bits: 32}))
	mustIn(r, Parser[int64](intParser[int64]{bits: 64}))

	mustIn(r, Parser[uint](uintParser[uint]{bits: strconv.IntSize}))
	mustIn(r, Parser[uint8](uintParser[uint8]{bits: 8}))
	mustIn(r, Parser[uint16](uintParser[uint16]{bits: 16}))
	mustIn(r, Parser[uint32](uintParser[uint32]{bits: 32}))
	mustIn(r, Parser[uint64](uintParser[uint64]{bits: 64}))

	mustIn(r, Parser[float32](floatParser[float32]{bits: 32}))
	mustIn(r, Parser[float64](floatParser[float64]{bits: 64}))

	mustIn(r, Parser[time.Duration](durationParser{}))
}

func mustIn[T any](r *Registry, p Parser[T]) {
	if err := RegisterIn(r, p); err != nil {
		panic(err)
	}
}
