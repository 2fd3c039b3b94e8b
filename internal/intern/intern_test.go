package intern

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/dzonerzy/snapopt/strslice"
)

func TestTableIntern(t *testing.T) {
	table := NewTable(0)

	s1 := table.Intern("port")
	s2 := table.Intern(string([]byte("port")))
	if unsafe.StringData(s1) != unsafe.StringData(s2) {
		t.Errorf("expected the same backing storage for equal names")
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 name, got %d", table.Len())
	}
}

func TestInternClones(t *testing.T) {
	table := NewTable(0)
	buf := []byte("verbose")
	name := table.Intern(string(strslice.FromBytes(buf)))
	buf[0] = 'X'

	if name != "verbose" {
		t.Errorf("interned name aliases caller memory: %q", name)
	}
}

func TestSingleChars(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{'a', "a"},
		{'Z', "Z"},
		{'5', "5"},
		{'@', "@"},
		{'é', "é"},
	}
	for _, tt := range tests {
		if got := Rune(tt.in); got != tt.want {
			t.Errorf("Rune(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	table := NewTable(0)
	table.Intern("v")
	if table.Len() != 0 {
		t.Errorf("single letters should use the shared table")
	}
	allocs := testing.AllocsPerRun(100, func() {
		_ = Rune('q')
	})
	if allocs != 0 {
		t.Errorf("Rune allocated %.1f times", allocs)
	}
}

func TestConcurrentIntern(t *testing.T) {
	table := NewTable(0)
	names := []string{"alpha", "beta", "gamma", "delta"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				table.Intern(names[j%len(names)])
			}
		}()
	}
	wg.Wait()

	if table.Len() != len(names) {
		t.Errorf("expected %d names, got %d", len(names), table.Len())
	}
}
