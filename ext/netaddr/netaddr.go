// Package netaddr registers network address option values: *url.URL,
// netip.Addr, netip.AddrPort and netip.Prefix.
package netaddr

import (
	"errors"
	"net/netip"
	"net/url"

	"github.com/dzonerzy/snapopt/container"
	"github.com/dzonerzy/snapopt/strslice"
	"github.com/dzonerzy/snapopt/value"
)

// ErrNotAbsolute is returned for URLs without a scheme.
var ErrNotAbsolute = errors.New("URL must be absolute")

// URLParser accepts absolute URLs only; "example.com/x" is rejected
// rather than read as a path.
type URLParser struct{}

func (URLParser) Parse(s strslice.Slice, _ int) (*url.URL, error) {
	u, err := url.Parse(s.String())
	if err != nil {
		// drop the *url.Error wrapper, it repeats the text
		var ue *url.Error
		if errors.As(err, &ue) {
			return nil, ue.Err
		}
		return nil, err
	}
	if !u.IsAbs() {
		return nil, ErrNotAbsolute
	}
	return u, nil
}

func (URLParser) Format(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

func init() {
	value.MustRegister[*url.URL](URLParser{})
	value.MustRegister(value.Text[netip.Addr]())
	value.MustRegister(value.Text[netip.AddrPort]())
	value.MustRegister(value.Text[netip.Prefix]())

	container.MustRegister(container.Sequence[*url.URL]())
	container.MustRegister(container.Sequence[netip.Addr]())
	container.MustRegister(container.Sequence[netip.AddrPort]())
	container.MustRegister(container.Sequence[netip.Prefix]())
	container.MustRegister(container.Set[netip.Addr]())
}
