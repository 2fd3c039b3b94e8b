// Package uuidval registers uuid.UUID option values. Import it for its
// side effects:
//
//	import _ "github.com/dzonerzy/snapopt/ext/uuidval"
package uuidval

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dzonerzy/snapopt/container"
	"github.com/dzonerzy/snapopt/strslice"
	"github.com/dzonerzy/snapopt/value"
)

// ErrNil is returned by NonNil for the all-zero UUID.
var ErrNil = errors.New("nil UUID not allowed")

// Parser accepts every form uuid.Parse does: canonical, urn:uuid:, braced and raw hex.
type Parser struct{}

func (Parser) Parse(s strslice.Slice, _ int) (uuid.UUID, error) {
	return uuid.Parse(string(s))
}

func (Parser) Format(v uuid.UUID) string {
	return v.String()
}

// NonNil is a bind.Validate function rejecting uuid.Nil.
func NonNil(v any) error {
	if id, ok := v.(uuid.UUID); ok && id == uuid.Nil {
		return ErrNil
	}
	return nil
}

func init() {
	value.MustRegister[uuid.UUID](Parser{})
	container.MustRegister(container.Sequence[uuid.UUID]())
	container.MustRegister(container.Set[uuid.UUID]())
}
