package value

import (
	"errors"
	"math"
	"time"

	"github.com/dzonerzy/snapopt/strslice"
)

var (
	errDurationUnit    = errors.New("invalid duration unit")
	errDurationNumber  = errors.New("number expected before unit")
	errDurationMissing = errors.New("missing unit after number")
	errDurationColon   = errors.New("invalid colon duration")
	errDurationRange   = errors.New("duration out of range")
)

type durationParser struct{}

// Parse accepts Go duration syntax ("1h30m", "-1.5s") plus "MM:SS",
// "HH:MM:SS", whole "1d", "1w", "1M" and "1Y" counts and spelled units
// such as "3 sec" or "2 hours 5 minutes".
func (durationParser) Parse(s strslice.Slice, _ int) (time.Duration, error) {
	if s.Empty() {
		return 0, errors.New("empty duration")
	}
	if d, err := time.ParseDuration(string(s)); err == nil {
		return d, nil
	}

	// 1. Colon format first: "MM:SS" or "HH:MM:SS"
	if colons := countByte(s, ':'); colons > 0 {
		return parseColonDuration(s, colons)
	}

	// 2. Extended units: "1d", "1w", "1M", "1Y"
	if d, ok := parseExtendedDuration(s); ok {
		return d, nil
	}

	// 3. Spelled units: "3 sec", "1 hour 30 min"
	return parseSpelledDuration(s)
}

func (durationParser) Format(v time.Duration) string {
	return v.String()
}

func countByte(s strslice.Slice, c byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			n++
		}
	}
	return n
}

func parseDecimal(s strslice.Slice) (int64, error) {
	if !s.Empty() && s[0] == '0' && len(s) > 1 {
		// "05" in a clock value is decimal, not octal
		s = s.TrimLeft("0")
		if s.Empty() {
			return 0, nil
		}
	}
	n, err := parseUnsigned(s, 63)
	return int64(n), err
}

func parseColonDuration(s strslice.Slice, colons int) (time.Duration, error) {
	if colons > 2 {
		return 0, errDurationColon
	}

	var fields [3]int64
	n := 0
	for part := range s.Split(":") {
		v, err := parseDecimal(part)
		if err != nil {
			return 0, errDurationColon
		}
		fields[n] = v
		n++
	}

	units := [3]time.Duration{time.Minute, time.Second}
	if colons == 2 {
		units = [3]time.Duration{time.Hour, time.Minute, time.Second}
	}

	var total time.Duration
	for i := 0; i < n; i++ {
		d, ok := mulDuration(fields[i], units[i])
		if !ok || total > math.MaxInt64-d {
			return 0, errDurationRange
		}
		total += d
	}
	return total, nil
}

// parseExtendedDuration handles day, week, month and year counts.
// 'M' is a month, 'm' stays a minute and is left to time.ParseDuration.
func parseExtendedDuration(s strslice.Slice) (time.Duration, bool) {
	if len(s) < 2 {
		return 0, false
	}

	var unit time.Duration
	switch s[len(s)-1] {
	case 'd', 'D':
		unit = 24 * time.Hour
	case 'w', 'W':
		unit = 7 * 24 * time.Hour
	case 'M':
		unit = 30 * 24 * time.Hour // 1 month = 30 days
	case 'y', 'Y':
		unit = 365 * 24 * time.Hour // 1 year = 365 days
	default:
		return 0, false
	}

	n, err := parseDecimal(s.DropBack(1))
	if err != nil {
		return 0, false
	}
	d, ok := mulDuration(n, unit)
	return d, ok
}

func parseSpelledDuration(s strslice.Slice) (time.Duration, error) {
	var total time.Duration
	var number int64
	hasNumber := false

	for i := 0; i < len(s); {
		c := s[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}

		if c >= '0' && c <= '9' {
			end := s.FindFirstNotOf("0123456789", i)
			if end == strslice.NPos {
				end = len(s)
			}
			n, err := parseDecimal(s[i:end])
			if err != nil {
				return 0, errDurationRange
			}
			number, hasNumber = n, true
			i = end
			continue
		}

		if !hasNumber {
			return 0, errDurationNumber
		}
		unit, consumed := parseTimeUnit(s[i:])
		if consumed == 0 {
			return 0, errDurationUnit
		}
		d, ok := mulDuration(number, unit)
		if !ok || total > math.MaxInt64-d {
			return 0, errDurationRange
		}
		total += d
		i += consumed
		hasNumber = false
	}

	if hasNumber {
		return 0, errDurationMissing
	}
	return total, nil
}

var spelledUnits = []struct {
	word string
	unit time.Duration
}{
	// longest first so "minutes" wins over "min"
	{"nanoseconds", time.Nanosecond},
	{"microseconds", time.Microsecond},
	{"milliseconds", time.Millisecond},
	{"seconds", time.Second},
	{"second", time.Second},
	{"minutes", time.Minute},
	{"minute", time.Minute},
	{"hours", time.Hour},
	{"hour", time.Hour},
	{"days", 24 * time.Hour},
	{"day", 24 * time.Hour},
	{"weeks", 7 * 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
	{"msec", time.Millisecond},
	{"sec", time.Second},
	{"min", time.Minute},
	{"ns", time.Nanosecond},
	{"us", time.Microsecond},
	{"µs", time.Microsecond},
	{"μs", time.Microsecond},
	{"ms", time.Millisecond},
	{"s", time.Second},
	{"m", time.Minute},
	{"h", time.Hour},
	{"d", 24 * time.Hour},
	{"w", 7 * 24 * time.Hour},
}

// parseTimeUnit matches a unit at the start of s and returns it with the
// number of bytes consumed, or 0 consumed when nothing matches.
func parseTimeUnit(s strslice.Slice) (time.Duration, int) {
	end := s.FindFirstOf(" \t0123456789", 0)
	if end == strslice.NPos {
		end = len(s)
	}
	word := s[:end]

	for _, u := range spelledUnits {
		if matchesWord(word, u.word) {
			return u.unit, len(word)
		}
	}
	return 0, 0
}

// matchesWord compares ASCII letters case-insensitively.
func matchesWord(s strslice.Slice, word string) bool {
	if len(s) != len(word) {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != word[i] {
			return false
		}
	}
	return true
}

func mulDuration(n int64, unit time.Duration) (time.Duration, bool) {
	if n < 0 || (n > 0 && n > math.MaxInt64/int64(unit)) {
		return 0, false
	}
	return time.Duration(n) * unit, true
}
