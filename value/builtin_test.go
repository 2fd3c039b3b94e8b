package value

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/dzonerzy/snapopt/strslice"
)

func TestParseSignedIntegers(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		err  error
	}{
		{"42", 42, nil},
		{"-42", -42, nil},
		{"+7", 7, nil},
		{"0", 0, nil},
		{"0x1F", 31, nil},
		{"0b101", 5, nil},
		{"0o17", 15, nil},
		{"017", 15, nil},
		{"9223372036854775807", 9223372036854775807, nil},
		{"-9223372036854775808", -9223372036854775808, nil},
		{"9223372036854775808", 0, strconv.ErrRange},
		{"", 0, strconv.ErrSyntax},
		{"-", 0, strconv.ErrSyntax},
		{"--1", 0, strconv.ErrSyntax},
		{"0x", 0, strconv.ErrSyntax},
		{"1_000", 0, strconv.ErrSyntax},
		{"08", 0, strconv.ErrSyntax},
		{"x", 0, strconv.ErrSyntax},
	}

	for _, tt := range tests {
		got, err := Parse[int64](strslice.Of(tt.in), 0)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("Parse[int64](%q) error = %v, want %v", tt.in, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse[int64](%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse[int64](%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseIntegerWidths(t *testing.T) {
	if v, err := Parse[int8](strslice.Of("127"), 0); err != nil || v != 127 {
		t.Errorf("int8 127: got %d, %v", v, err)
	}
	if v, err := Parse[int8](strslice.Of("-128"), 0); err != nil || v != -128 {
		t.Errorf("int8 -128: got %d, %v", v, err)
	}
	if _, err := Parse[int8](strslice.Of("128"), 0); !errors.Is(err, strconv.ErrRange) {
		t.Errorf("int8 128: expected range error, got %v", err)
	}
	if _, err := Parse[int8](strslice.Of("-129"), 0); !errors.Is(err, strconv.ErrRange) {
		t.Errorf("int8 -129: expected range error, got %v", err)
	}
	if v, err := Parse[uint8](strslice.Of("0xff"), 0); err != nil || v != 255 {
		t.Errorf("uint8 0xff: got %d, %v", v, err)
	}
	if _, err := Parse[uint8](strslice.Of("256"), 0); !errors.Is(err, strconv.ErrRange) {
		t.Errorf("uint8 256: expected range error, got %v", err)
	}
	if _, err := Parse[uint](strslice.Of("-1"), 0); !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("uint -1: expected syntax error, got %v", err)
	}
	if v, err := Parse[uint64](strslice.Of("18446744073709551615"), 0); err != nil || v != 18446744073709551615 {
		t.Errorf("uint64 max: got %d, %v", v, err)
	}
	if _, err := Parse[uint64](strslice.Of("18446744073709551616"), 0); !errors.Is(err, strconv.ErrRange) {
		t.Errorf("uint64 max+1: expected range error, got %v", err)
	}
	if v, err := Parse[int16](strslice.Of("-0x10"), 0); err != nil || v != -16 {
		t.Errorf("int16 -0x10: got %d, %v", v, err)
	}
}

func TestIntegerErrorNamesType(t *testing.T) {
	_, err := Parse[int](strslice.Of("x"), 3)

	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConversionError, got %T", err)
	}
	if ce.Text != "x" || ce.Type != "int" || ce.Index != 3 {
		t.Errorf("unexpected error fields: %+v", ce)
	}
	if want := `invalid value "x" for int: not a valid integer: invalid syntax`; ce.Error() != want {
		t.Errorf("Error() = %q, want %q", ce.Error(), want)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
		ok   bool
	}{
		{"", true, true},
		{"1", true, true},
		{"true", true, true},
		{"TRUE", true, true},
		{"yes", true, true},
		{"On", true, true},
		{"0", false, true},
		{"false", false, true},
		{"no", false, true},
		{"OFF", false, true},
		{"maybe", false, false},
		{"2", false, false},
	}

	for _, tt := range tests {
		got, err := Parse[bool](strslice.Of(tt.in), 0)
		if (err == nil) != tt.ok {
			t.Errorf("Parse[bool](%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("Parse[bool](%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if v, err := Parse[float64](strslice.Of("1.5e3"), 0); err != nil || v != 1500 {
		t.Errorf("float64 1.5e3: got %v, %v", v, err)
	}
	if v, err := Parse[float32](strslice.Of("-0.25"), 0); err != nil || v != -0.25 {
		t.Errorf("float32 -0.25: got %v, %v", v, err)
	}
	if _, err := Parse[float64](strslice.Of("abc"), 0); !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("float64 abc: expected syntax error, got %v", err)
	}
	if _, err := Parse[float32](strslice.Of("1e40"), 0); !errors.Is(err, strconv.ErrRange) {
		t.Errorf("float32 1e40: expected range error, got %v", err)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"0", 0},
		{"1h30m", 90 * time.Minute},
		{"-1.5s", -1500 * time.Millisecond},
		{"05:30", 5*time.Minute + 30*time.Second},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"2d", 48 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"1M", 30 * 24 * time.Hour},
		{"1Y", 365 * 24 * time.Hour},
		{"3 sec", 3 * time.Second},
		{"2 hours 5 minutes", 2*time.Hour + 5*time.Minute},
		{"1hour30min", 90 * time.Minute},
		{"10 MS", 10 * time.Millisecond},
	}

	for _, tt := range tests {
		got, err := Parse[time.Duration](strslice.Of(tt.in), 0)
		if err != nil {
			t.Errorf("Parse[Duration](%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse[Duration](%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "10", "5 parsecs", "1:2:3:4", "1:x", "99999999999999999999d"} {
		if _, err := Parse[time.Duration](strslice.Of(in), 0); err == nil {
			t.Errorf("Parse[Duration](%q) expected error", in)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	check := func(name, got string, err error, want string) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}

	s, err := Format(42)
	check("int", s, err, "42")
	s, err = Format(uint16(7))
	check("uint16", s, err, "7")
	s, err = Format(true)
	check("bool", s, err, "true")
	s, err = Format(90 * time.Second)
	check("duration", s, err, "1m30s")
	s, err = Format(2.5)
	check("float64", s, err, "2.5")

	back, err := Parse[time.Duration](strslice.Of("1m30s"), 0)
	if err != nil || back != 90*time.Second {
		t.Errorf("duration round trip: got %v, %v", back, err)
	}
}

func TestFormatRoundTripAllRegistered(t *testing.T) {
	samples := []string{"0", "1", "42", "-7", "0x1F", "2.5", "true", "off", "1m30s", "01:30", "2d", "hello"}

	r := NewRegistry()
	for _, typ := range r.Types() {
		b, err := r.LookupType(typ)
		if err != nil {
			t.Fatalf("%s: %v", TypeName(typ), err)
		}

		parsed := 0
		for _, in := range samples {
			v, err := b.Parse(strslice.Of(in), 0)
			if err != nil {
				continue
			}
			parsed++

			text, ok := b.Format(v)
			if !ok {
				t.Fatalf("%s: no formatter", TypeName(typ))
			}
			back, err := b.Parse(strslice.Of(text), 0)
			if err != nil {
				t.Errorf("%s: Format(%q) = %q does not parse: %v", TypeName(typ), in, text, err)
				continue
			}
			if !reflect.DeepEqual(back, v) {
				t.Errorf("%s: %q -> %q -> %v, want %v", TypeName(typ), in, text, back, v)
			}
		}
		if parsed == 0 {
			t.Errorf("%s: no sample parsed", TypeName(typ))
		}
	}
}

func TestStringIsCopied(t *testing.T) {
	buf := []byte("hello")
	got, err := Parse[string](strslice.FromBytes(buf), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf[0] = 'j'
	if got != "hello" {
		t.Errorf("parsed string aliases input: %q", got)
	}
}
