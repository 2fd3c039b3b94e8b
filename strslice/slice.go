// Package strslice provides Slice, a read-only view over raw argument text.
// A Slice never owns the bytes it refers to and none of its methods allocate.
package strslice

import (
	"io"
	"iter"
	"strings"
	"unsafe"
)

// NPos is returned by the search methods when nothing matches.
// It is distinct from every valid index, including 0.
const NPos = -1

// End may be passed as the from argument of FindLastOf and FindLastNotOf
// to scan backward from the last byte.
const End = int(^uint(0) >> 1)

// Slice is an immutable view over a contiguous run of bytes.
//
// A Slice built with FromBytes aliases the caller's buffer: the buffer must
// outlive the Slice and must not be modified while the Slice is in use.
type Slice string

// Of returns a Slice over s. No bytes are copied.
func Of(s string) Slice {
	return Slice(s)
}

// FromBytes returns a Slice over b without copying.
func FromBytes(b []byte) Slice {
	if len(b) == 0 {
		return ""
	}
	return Slice(unsafe.String(unsafe.SliceData(b), len(b)))
}

// Len returns the number of bytes in the view.
func (s Slice) Len() int { return len(s) }

// Empty reports whether the view has no bytes.
func (s Slice) Empty() bool { return len(s) == 0 }

// String returns the viewed text.
func (s Slice) String() string { return string(s) }

// At returns the byte at index i. It panics if i is out of range.
func (s Slice) At(i int) byte { return s[i] }

// Bytes returns the viewed bytes without copying. The result must not be modified.
func (s Slice) Bytes() []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(string(s)), len(s))
}

// Front returns the first n bytes (all of them if n exceeds Len).
func (s Slice) Front(n int) Slice {
	return s[:clamp(n, len(s))]
}

// Back returns the last n bytes (all of them if n exceeds Len).
func (s Slice) Back(n int) Slice {
	return s[len(s)-clamp(n, len(s)):]
}

// DropFront returns the view without its first n bytes.
func (s Slice) DropFront(n int) Slice {
	return s[clamp(n, len(s)):]
}

// DropBack returns the view without its last n bytes.
func (s Slice) DropBack(n int) Slice {
	return s[:len(s)-clamp(n, len(s))]
}

// Substr returns at most n bytes starting at pos. Both arguments are clamped.
func (s Slice) Substr(pos, n int) Slice {
	pos = clamp(pos, len(s))
	rest := s[pos:]
	return rest[:clamp(n, len(rest))]
}

// HasPrefix reports whether the view begins with prefix.
func (s Slice) HasPrefix(prefix Slice) bool {
	return strings.HasPrefix(string(s), string(prefix))
}

// HasSuffix reports whether the view ends with suffix.
func (s Slice) HasSuffix(suffix Slice) bool {
	return strings.HasSuffix(string(s), string(suffix))
}

// Compare returns -1, 0 or +1 comparing s and t bytewise.
func (s Slice) Compare(t Slice) int {
	return strings.Compare(string(s), string(t))
}

// Find returns the index of the first c at or after from, or NPos.
func (s Slice) Find(c byte, from int) int {
	from = max(from, 0)
	if from >= len(s) {
		return NPos
	}
	if i := strings.IndexByte(string(s[from:]), c); i >= 0 {
		return from + i
	}
	return NPos
}

// FindSlice returns the index of the first occurrence of needle at or after
// from, or NPos. An empty needle matches at from as long as from <= Len.
func (s Slice) FindSlice(needle Slice, from int) int {
	from = max(from, 0)
	if from > len(s) {
		return NPos
	}
	if len(needle) == 0 {
		return from
	}
	if i := strings.Index(string(s[from:]), string(needle)); i >= 0 {
		return from + i
	}
	return NPos
}

// FindFirstOf returns the first index >= from whose byte is in chars.
func (s Slice) FindFirstOf(chars Slice, from int) int {
	from = max(from, 0)
	if from >= len(s) || len(chars) == 0 {
		return NPos
	}
	set := makeByteSet(chars)
	for i := from; i < len(s); i++ {
		if set.contains(s[i]) {
			return i
		}
	}
	return NPos
}

// FindFirstNotOf returns the first index >= from whose byte is not in chars.
func (s Slice) FindFirstNotOf(chars Slice, from int) int {
	from = max(from, 0)
	if from >= len(s) {
		return NPos
	}
	set := makeByteSet(chars)
	for i := from; i < len(s); i++ {
		if !set.contains(s[i]) {
			return i
		}
	}
	return NPos
}

// FindLastOf returns the last index <= from whose byte is in chars.
// A negative from (NPos) or one past the view (End) scans the whole view.
func (s Slice) FindLastOf(chars Slice, from int) int {
	if len(chars) == 0 {
		return NPos
	}
	set := makeByteSet(chars)
	for i := s.lastFrom(from); i >= 0; i-- {
		if set.contains(s[i]) {
			return i
		}
	}
	return NPos
}

// FindLastNotOf returns the last index <= from whose byte is not in chars.
func (s Slice) FindLastNotOf(chars Slice, from int) int {
	set := makeByteSet(chars)
	for i := s.lastFrom(from); i >= 0; i-- {
		if !set.contains(s[i]) {
			return i
		}
	}
	return NPos
}

func (s Slice) lastFrom(from int) int {
	if from < 0 || from >= len(s) {
		return len(s) - 1
	}
	return from
}

// TrimLeft drops the longest prefix made only of bytes in chars.
func (s Slice) TrimLeft(chars Slice) Slice {
	i := s.FindFirstNotOf(chars, 0)
	if i == NPos {
		return s[len(s):]
	}
	return s[i:]
}

// TrimRight drops the longest suffix made only of bytes in chars.
func (s Slice) TrimRight(chars Slice) Slice {
	i := s.FindLastNotOf(chars, End)
	if i == NPos {
		return s[:0]
	}
	return s[:i+1]
}

// Trim is TrimLeft followed by TrimRight.
func (s Slice) Trim(chars Slice) Slice {
	return s.TrimLeft(chars).TrimRight(chars)
}

// Cut slices s around the first sep.
func (s Slice) Cut(sep Slice) (before, after Slice, found bool) {
	if i := s.FindSlice(sep, 0); i != NPos && len(sep) > 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, s[len(s):], false
}

// Split yields the pieces of s separated by sep, empty pieces included.
// An empty s yields one empty piece; an empty sep yields s unchanged.
func (s Slice) Split(sep Slice) iter.Seq[Slice] {
	return func(yield func(Slice) bool) {
		rest := s
		for {
			before, after, found := rest.Cut(sep)
			if !yield(before) || !found {
				return
			}
			rest = after
		}
	}
}

// WriteTo writes exactly Len bytes to w. It implements io.WriterTo.
func (s Slice) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, string(s))
	return int64(n), err
}

func clamp(n, hi int) int {
	if n < 0 {
		return 0
	}
	if n > hi {
		return hi
	}
	return n
}

// byteSet is a 256-bit membership table kept on the stack.
type byteSet [8]uint32

func makeByteSet(chars Slice) byteSet {
	var set byteSet
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		set[c>>5] |= 1 << (c & 31)
	}
	return set
}

func (bs *byteSet) contains(c byte) bool {
	return bs[c>>5]&(1<<(c&31)) != 0
}
