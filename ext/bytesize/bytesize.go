// Package bytesize provides Size, a byte count option value accepting
// human-readable forms such as "512", "10MB" or "1.5 GiB".
package bytesize

import (
	"github.com/dustin/go-humanize"

	"github.com/dzonerzy/snapopt/container"
	"github.com/dzonerzy/snapopt/strslice"
)

// Size is a number of bytes.
type Size uint64

// Common sizes.
const (
	B   Size = 1
	KiB Size = 1 << (10 * iota)
	MiB
	GiB
	TiB
)

// UnmarshalOption parses SI ("kB", "MB") and IEC ("KiB", "MiB") suffixes.
func (s *Size) UnmarshalOption(text strslice.Slice, _ int) error {
	n, err := humanize.ParseBytes(text.String())
	if err != nil {
		return err
	}
	*s = Size(n)
	return nil
}

// FormatOption renders s with IEC units, e.g. "1.5 MiB".
func (s Size) FormatOption() string {
	return humanize.IBytes(uint64(s))
}

func (s Size) String() string {
	return s.FormatOption()
}

// Bytes returns s as a plain integer.
func (s Size) Bytes() uint64 { return uint64(s) }

func init() {
	container.MustRegister(container.Sequence[Size]())
	container.MustRegister(container.Map[string, Size]())
}
