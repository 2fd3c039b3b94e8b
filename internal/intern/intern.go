// Package intern keeps one canonical copy of each option name so that
// diagnostics and lookups never hold on to argv memory.
package intern

import (
	"strings"
	"sync"
)

// Table is a concurrency-safe set of canonical strings.
type Table struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewTable returns an empty table sized for capacity names.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = 64
	}
	return &Table{names: make(map[string]string, capacity)}
}

// Intern returns the canonical copy of s, storing a private clone on first use.
func (t *Table) Intern(s string) string {
	if len(s) == 1 {
		if c, ok := singleChar(s[0]); ok {
			return c
		}
	}

	t.mu.RLock()
	if c, ok := t.names[s]; ok {
		t.mu.RUnlock()
		return c
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock
	if c, ok := t.names[s]; ok {
		return c
	}
	c := strings.Clone(s)
	t.names[c] = c
	return c
}

// Len returns the number of stored names.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

// Rune returns r as a string, using a shared copy for ASCII letters and digits.
func Rune(r rune) string {
	if r < 0x80 {
		if c, ok := singleChar(byte(r)); ok {
			return c
		}
	}
	return string(r)
}

func singleChar(b byte) (string, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return singleCharStrings[b-'a'], true
	case b >= 'A' && b <= 'Z':
		return singleCharStrings[26+b-'A'], true
	case b >= '0' && b <= '9':
		return singleCharStrings[52+b-'0'], true
	}
	return "", false
}

// a-z (0-25), A-Z (26-51), 0-9 (52-61)
var singleCharStrings = [62]string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
}

// Names is the process-wide table shared by every cmdline parser.
var Names = NewTable(128)

// Intern interns s in Names.
func Intern(s string) string {
	return Names.Intern(s)
}
