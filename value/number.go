package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dzonerzy/snapopt/strslice"
)

// parseUnsigned parses an unsigned integer using ASCII math. The base is
// taken from the prefix: 0x (16), 0o or a bare leading 0 (8), 0b (2),
// otherwise 10. The result must fit in bitSize bits.
func parseUnsigned(s strslice.Slice, bitSize int) (uint64, error) {
	if s.Empty() {
		return 0, strconv.ErrSyntax
	}

	base := uint64(10)
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, s = 16, s[2:]
		case 'o', 'O':
			base, s = 8, s[2:]
		case 'b', 'B':
			base, s = 2, s[2:]
		default:
			base, s = 8, s[1:]
		}
		if s.Empty() {
			return 0, strconv.ErrSyntax
		}
	}

	limit := uint64(math.MaxUint64)
	if bitSize < 64 {
		limit = 1<<uint(bitSize) - 1
	}

	var n uint64
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= base {
			return 0, strconv.ErrSyntax
		}

		// Check for overflow before multiplication
		if n > (limit-d)/base {
			return 0, strconv.ErrRange
		}
		n = n*base + d
	}

	return n, nil
}

// parseSigned parses an optionally signed integer that must fit in bitSize bits.
func parseSigned(s strslice.Slice, bitSize int) (int64, error) {
	if s.Empty() {
		return 0, strconv.ErrSyntax
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s.Empty() || s[0] == '-' || s[0] == '+' {
		return 0, strconv.ErrSyntax
	}

	magnitude, err := parseUnsigned(s, 64)
	if err != nil {
		return 0, err
	}

	cutoff := uint64(1) << uint(bitSize-1)
	if negative {
		if magnitude > cutoff {
			return 0, strconv.ErrRange
		}
		return -int64(magnitude), nil
	}
	if magnitude >= cutoff {
		return 0, strconv.ErrRange
	}
	return int64(magnitude), nil
}

// digitValue maps an ASCII digit of any base up to 16 to its value.
// Anything else maps to 255, which is never a valid digit.
func digitValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c - 'a' + 10)
	case c >= 'A' && c <= 'F':
		return uint64(c - 'A' + 10)
	default:
		return 255
	}
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var (
	errNotInteger   = fmt.Errorf("not a valid integer: %w", strconv.ErrSyntax)
	errIntegerRange = fmt.Errorf("integer out of range: %w", strconv.ErrRange)
	errNotFloat     = fmt.Errorf("not a valid number: %w", strconv.ErrSyntax)
	errFloatRange   = fmt.Errorf("number out of range: %w", strconv.ErrRange)
)

// integerError maps the bare strconv causes to readable messages.
func integerError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, strconv.ErrRange):
		return errIntegerRange
	default:
		return errNotInteger
	}
}

type intParser[T signed] struct {
	bits int
}

func (p intParser[T]) Parse(s strslice.Slice, _ int) (T, error) {
	n, err := parseSigned(s, p.bits)
	return T(n), integerError(err)
}

func (intParser[T]) Format(v T) string {
	return strconv.FormatInt(int64(v), 10)
}

type uintParser[T unsigned] struct {
	bits int
}

func (p uintParser[T]) Parse(s strslice.Slice, _ int) (T, error) {
	if !s.Empty() && s[0] == '+' {
		s = s[1:]
	}
	n, err := parseUnsigned(s, p.bits)
	return T(n), integerError(err)
}

func (uintParser[T]) Format(v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

type floatParser[T ~float32 | ~float64] struct {
	bits int
}

func (p floatParser[T]) Parse(s strslice.Slice, _ int) (T, error) {
	f, err := strconv.ParseFloat(string(s), p.bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errFloatRange
		}
		return 0, errNotFloat
	}
	return T(f), nil
}

func (p floatParser[T]) Format(v T) string {
	return strconv.FormatFloat(float64(v), 'g', -1, p.bits)
}
