package cmdline

import (
	"github.com/dzonerzy/snapopt/bind"
	"github.com/dzonerzy/snapopt/internal/intern"
)

// NumOccurrences controls how often an option may appear.
type NumOccurrences uint8

const (
	Optional     NumOccurrences = iota // at most once
	ZeroOrMore                         // any number of times
	RequiredOnce                       // exactly once
	OneOrMore                          // at least once
)

func (n NumOccurrences) String() string {
	switch n {
	case Optional:
		return "optional"
	case ZeroOrMore:
		return "zero or more"
	case RequiredOnce:
		return "required"
	case OneOrMore:
		return "one or more"
	}
	return "unknown"
}

// NumArgs controls whether an option takes a value.
type NumArgs uint8

const (
	ArgOptional   NumArgs = iota // only as --name=value
	ArgRequired                  // --name=value or --name value
	ArgDisallowed                // --name only
)

type option struct {
	name   string
	short  string
	target *bind.Target

	occurrences NumOccurrences
	args        NumArgs

	prefix       bool
	grouping     bool
	positional   bool
	consumeAfter bool
	env          []string

	count int // occurrences accepted during the current parse
}

func (o *option) occurrenceAllowed() bool {
	switch o.occurrences {
	case Optional, RequiredOnce:
		return o.count == 0
	}
	return true
}

func (o *option) required() bool {
	return o.occurrences == RequiredOnce || o.occurrences == OneOrMore
}

// OptionSetting configures one option passed to Add.
type OptionSetting func(*option)

// Short adds a single-letter alias.
func Short(r rune) OptionSetting {
	return func(o *option) { o.short = intern.Rune(r) }
}

// Required makes the option mandatory: exactly once for scalars, at least
// once for containers.
func Required() OptionSetting {
	return func(o *option) {
		if o.occurrences == ZeroOrMore {
			o.occurrences = OneOrMore
		} else {
			o.occurrences = RequiredOnce
		}
	}
}

// Occurrences sets how often the option may appear.
func Occurrences(n NumOccurrences) OptionSetting {
	return func(o *option) { o.occurrences = n }
}

// Args sets whether the option takes a value.
func Args(a NumArgs) OptionSetting {
	return func(o *option) { o.args = a }
}

// Prefix lets the value follow the name directly, as in -Ipath.
func Prefix() OptionSetting {
	return func(o *option) { o.prefix = true }
}

// Grouping lets single-letter options combine, as in -abc.
func Grouping() OptionSetting {
	return func(o *option) { o.grouping = true }
}

// Positional binds the option to bare arguments instead of a name.
func Positional() OptionSetting {
	return func(o *option) { o.positional = true }
}

// ConsumeAfter treats every argument after this positional as positional too.
func ConsumeAfter() OptionSetting {
	return func(o *option) {
		o.positional = true
		o.consumeAfter = true
	}
}

// Env names environment variables consulted, in order, when the option
// does not appear on the command line.
func Env(vars ...string) OptionSetting {
	return func(o *option) { o.env = append(o.env, vars...) }
}
