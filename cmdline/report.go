package cmdline

import (
	"io"

	"github.com/dzonerzy/snapopt/internal/diag"
)

// Report writes err to w, one line per failure. Output is coloured when w
// is a terminal.
func Report(w io.Writer, err error) error {
	return report(diag.New(w), err)
}

// ReportPlain is like Report but never colours output.
func ReportPlain(w io.Writer, err error) error {
	return report(diag.Plain(w), err)
}

func report(p *diag.Printer, err error) error {
	list := Errors(err)
	entries := make([]diag.Entry, len(list))
	for i, e := range list {
		entries[i] = diag.Entry{Kind: string(e.Type), Message: e.Error(), Hint: e.Suggestion}
	}
	return p.Print(entries...)
}
