package strslice

import (
	"bytes"
	"slices"
	"testing"
)

func TestFind(t *testing.T) {
	s := Of("a=b=c")

	tests := []struct {
		c    byte
		from int
		want int
	}{
		{'=', 0, 1},
		{'=', 1, 1},
		{'=', 2, 3},
		{'=', 4, NPos},
		{'a', 5, NPos},
		{'a', 99, NPos},
		{'a', -3, 0},
		{'x', 0, NPos},
	}

	for _, tt := range tests {
		if got := s.Find(tt.c, tt.from); got != tt.want {
			t.Errorf("Find(%q, %d) = %d, want %d", tt.c, tt.from, got, tt.want)
		}
	}

	if got := Of("").Find('a', 0); got != NPos {
		t.Errorf("Find on empty slice = %d, want NPos", got)
	}
}

func TestFindSlice(t *testing.T) {
	s := Of("hello world")

	tests := []struct {
		needle string
		from   int
		want   int
	}{
		{"world", 0, 6},
		{"o", 5, 7},
		{"", 0, 0},
		{"", 4, 4},
		{"", 11, 11},
		{"", 12, NPos},
		{"world!", 0, NPos},
		{"d", 11, NPos},
		{"hello world", 0, 0},
		{"hello world", 1, NPos},
	}

	for _, tt := range tests {
		if got := s.FindSlice(Of(tt.needle), tt.from); got != tt.want {
			t.Errorf("FindSlice(%q, %d) = %d, want %d", tt.needle, tt.from, got, tt.want)
		}
	}
}

func TestFindFirstOf(t *testing.T) {
	s := Of("key: value")

	if got := s.FindFirstOf(":=", 0); got != 3 {
		t.Errorf("FindFirstOf = %d, want 3", got)
	}
	if got := s.FindFirstOf(":=", 4); got != NPos {
		t.Errorf("FindFirstOf past match = %d, want NPos", got)
	}
	if got := s.FindFirstOf("", 0); got != NPos {
		t.Errorf("FindFirstOf with empty charset = %d, want NPos", got)
	}
	if got := s.FindFirstOf("k", s.Len()); got != NPos {
		t.Errorf("FindFirstOf from Len = %d, want NPos", got)
	}
	if got := s.FindFirstNotOf("key", 0); got != 3 {
		t.Errorf("FindFirstNotOf = %d, want 3", got)
	}
	if got := s.FindFirstNotOf("", 2); got != 2 {
		t.Errorf("FindFirstNotOf with empty charset = %d, want 2", got)
	}
	if got := Of("aaa").FindFirstNotOf("a", 0); got != NPos {
		t.Errorf("FindFirstNotOf all members = %d, want NPos", got)
	}
}

func TestFindLastOf(t *testing.T) {
	s := Of("a/b/c.txt")

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"last slash", s.FindLastOf("/", End), 3},
		{"last slash before 2", s.FindLastOf("/", 2), 1},
		{"clamped from", s.FindLastOf("/", 1000), 3},
		{"negative from scans from end", s.FindLastOf("a", -1), 0},
		{"npos from scans from end", s.FindLastOf("/", NPos), 3},
		{"last not of with npos", Of("a/b/c").FindLastNotOf("c", NPos), 3},
		{"last of with npos", Of("a/b/c").FindLastOf("/", NPos), 3},
		{"empty charset", s.FindLastOf("", End), NPos},
		{"no match", s.FindLastOf("#", End), NPos},
		{"last not of", s.FindLastNotOf("txt.", End), 4},
		{"last not of from 0", s.FindLastNotOf("/", 0), 0},
		{"empty slice", Of("").FindLastNotOf(" ", End), NPos},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		in, left, right, both string
	}{
		{"  abc  ", "abc  ", "  abc", "abc"},
		{"abc", "abc", "abc", "abc"},
		{" \t \t", "", "", ""},
		{"", "", "", ""},
		{"\tx", "x", "\tx", "x"},
	}

	for _, tt := range tests {
		s := Of(tt.in)
		if got := s.TrimLeft(" \t"); got != Slice(tt.left) {
			t.Errorf("TrimLeft(%q) = %q, want %q", tt.in, got, tt.left)
		}
		if got := s.TrimRight(" \t"); got != Slice(tt.right) {
			t.Errorf("TrimRight(%q) = %q, want %q", tt.in, got, tt.right)
		}
		got := s.Trim(" \t")
		if got != Slice(tt.both) {
			t.Errorf("Trim(%q) = %q, want %q", tt.in, got, tt.both)
		}
		if again := got.Trim(" \t"); again != got {
			t.Errorf("Trim is not idempotent on %q: %q", tt.in, again)
		}
	}
}

func TestFrontBack(t *testing.T) {
	s := Of("option")

	if got := s.Front(3); got != "opt" {
		t.Errorf("Front(3) = %q", got)
	}
	if got := s.Front(100); got != s {
		t.Errorf("Front(100) = %q", got)
	}
	if got := s.Back(3); got != "ion" {
		t.Errorf("Back(3) = %q", got)
	}
	if got := s.DropFront(2); got != "tion" {
		t.Errorf("DropFront(2) = %q", got)
	}
	if got := s.DropBack(-1); got != s {
		t.Errorf("DropBack(-1) = %q", got)
	}
	if got := s.Substr(2, 2); got != "ti" {
		t.Errorf("Substr(2, 2) = %q", got)
	}
	if got := s.Substr(5, 10); got != "n" {
		t.Errorf("Substr(5, 10) = %q", got)
	}
	if got := s.Substr(10, 1); !got.Empty() {
		t.Errorf("Substr(10, 1) = %q, want empty", got)
	}
}

func TestCutAndSplit(t *testing.T) {
	k, v, ok := Of("name=value=x").Cut("=")
	if !ok || k != "name" || v != "value=x" {
		t.Fatalf("Cut = %q %q %v", k, v, ok)
	}

	if _, _, ok := Of("novalue").Cut("="); ok {
		t.Fatal("Cut found a separator that is not there")
	}

	got := slices.Collect(Of("a,,b").Split(","))
	want := []Slice{"a", "", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("Split = %q, want %q", got, want)
	}

	got = slices.Collect(Of("").Split(","))
	if len(got) != 1 || got[0] != "" {
		t.Errorf("Split of empty = %q, want one empty piece", got)
	}

	got = slices.Collect(Of("abc").Split(""))
	if len(got) != 1 || got[0] != "abc" {
		t.Errorf("Split with empty sep = %q", got)
	}
}

func TestFromBytesSharesMemory(t *testing.T) {
	buf := []byte("value")
	s := FromBytes(buf)

	if s != "value" {
		t.Fatalf("FromBytes = %q", s)
	}
	if &s.Bytes()[0] != &buf[0] {
		t.Error("FromBytes copied the buffer")
	}
	if FromBytes(nil).Len() != 0 {
		t.Error("FromBytes(nil) is not empty")
	}
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	s := Of("  padded  ").Trim(" ")

	n, err := s.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(s.Len()) || buf.String() != "padded" {
		t.Errorf("WriteTo wrote %d bytes %q", n, buf.String())
	}
}

// TestZeroAllocSearch ensures the search and trim primitives never allocate.
func TestZeroAllocSearch(t *testing.T) {
	s := Of("  --output=/tmp/file.txt  ")

	allocs := testing.AllocsPerRun(1000, func() {
		v := s.Trim(" ").DropFront(2)
		if i := v.Find('=', 0); i == NPos {
			t.Fatal("separator not found")
		}
		_ = v.FindLastOf("/", End)
		_ = v.FindFirstNotOf("-", 0)
		_ = v.FindSlice("file", 0)
	})

	if allocs != 0 {
		t.Fatalf("expected 0 allocs/op, got %.2f", allocs)
	}
}

func FuzzSearchBounds(f *testing.F) {
	f.Add("hello world", "lo", 0)
	f.Add("", "", 0)
	f.Add("abc", "", 3)

	f.Fuzz(func(t *testing.T, text, chars string, from int) {
		s := Of(text)
		if from < 0 || from > s.Len() {
			from = 0
		}

		for _, got := range []int{
			s.FindFirstOf(Slice(chars), from),
			s.FindFirstNotOf(Slice(chars), from),
		} {
			if got != NPos && (got < from || got >= s.Len()) {
				t.Fatalf("index %d outside [%d, %d)", got, from, s.Len())
			}
		}

		if got := s.FindSlice(Slice(chars), from); got != NPos && got+len(chars) > s.Len() {
			t.Fatalf("match at %d does not fit in %d bytes", got, s.Len())
		}

		trimmed := s.Trim(Slice(chars))
		if trimmed.Trim(Slice(chars)) != trimmed {
			t.Fatalf("Trim not idempotent for %q/%q", text, chars)
		}
	})
}
