// Package diag renders parse failures for humans.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// Entry is one diagnostic line.
type Entry struct {
	Kind    string
	Message string
	Hint    string // rendered as "did you mean ...?" when set
}

// Printer writes entries, coloured when the destination is a terminal.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a printer that colours output only for terminals.
func New(w io.Writer) *Printer {
	return &Printer{w: w, color: IsTerminal(w)}
}

// Plain returns a printer that never colours output.
func Plain(w io.Writer) *Printer {
	return &Printer{w: w}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var (
	errorLabel = color.New(color.FgRed, color.OpBold)
	kindStyle  = color.FgGray
	hintStyle  = color.FgLightCyan
)

// Print writes one entry per line and returns the first write error.
func (p *Printer) Print(entries ...Entry) error {
	for _, e := range entries {
		if err := p.print(e); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) print(e Entry) error {
	label, kind, hint := "error:", "["+e.Kind+"]", ""
	if e.Hint != "" {
		hint = fmt.Sprintf(" (did you mean '%s'?)", e.Hint)
	}
	if p.color {
		label = errorLabel.Sprint(label)
		kind = kindStyle.Sprint(kind)
		if hint != "" {
			hint = hintStyle.Sprint(hint)
		}
	}

	var err error
	if e.Kind == "" {
		_, err = fmt.Fprintf(p.w, "%s %s%s\n", label, e.Message, hint)
	} else {
		_, err = fmt.Fprintf(p.w, "%s %s %s%s\n", label, e.Message, kind, hint)
	}
	return err
}
