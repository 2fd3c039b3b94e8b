// Package cmdline is a single-pass command-line engine over bind targets.
//
// Options are registered by name with a *bind.Target that owns parsing and
// storage. Parse walks the arguments once, reporting every failure in an
// ErrorList instead of stopping at the first one.
package cmdline

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/dzonerzy/snapopt/bind"
	"github.com/dzonerzy/snapopt/container"
	"github.com/dzonerzy/snapopt/internal/fuzzy"
	"github.com/dzonerzy/snapopt/internal/intern"
	"github.com/dzonerzy/snapopt/internal/pool"
	"github.com/dzonerzy/snapopt/strslice"
)

// groupPool holds the scratch used to validate -abc groups before applying them.
var groupPool = pool.NewSlice[*option](8, 64)

// Parser holds the option table.
type Parser struct {
	options     map[string]*option
	order       []*option
	positionals []*option

	logger        *slog.Logger
	lookupEnv     func(string) (string, bool)
	registry      *container.Registry
	ignoreUnknown bool
	maxDistance   int
	verified      bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger traces accepted options at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithLookupEnv replaces os.LookupEnv for Env fallbacks.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(p *Parser) {
		if fn != nil {
			p.lookupEnv = fn
		}
	}
}

// WithRegistry sets the registry verified before the first parse.
func WithRegistry(r *container.Registry) Option {
	return func(p *Parser) { p.registry = r }
}

// IgnoreUnknown passes unknown options through to the leftovers.
func IgnoreUnknown() Option {
	return func(p *Parser) { p.ignoreUnknown = true }
}

// WithSuggestDistance sets the maximum edit distance for suggestions; 0
// disables them.
func WithSuggestDistance(n int) Option {
	return func(p *Parser) { p.maxDistance = n }
}

// New returns an empty parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		options:     make(map[string]*option, 16),
		logger:      slog.New(slog.DiscardHandler),
		lookupEnv:   os.LookupEnv,
		registry:    container.Default,
		maxDistance: 2,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add registers t under name. Scalars default to Optional, containers to
// ZeroOrMore; bool targets take an optional value, the rest require one.
func (p *Parser) Add(name string, t *bind.Target, settings ...OptionSetting) error {
	if t == nil {
		return NewParseError(ErrorTypeBinding, fmt.Sprintf("option '%s' has no target", name)).WithOption(name)
	}

	o := &option{
		name:        intern.Intern(name),
		target:      t,
		occurrences: Optional,
		args:        ArgRequired,
	}
	if !t.IsScalar() {
		o.occurrences = ZeroOrMore
	}
	if t.IsBool() {
		o.args = ArgOptional
	}
	for _, s := range settings {
		s(o)
	}

	if o.positional {
		p.positionals = append(p.positionals, o)
		p.order = append(p.order, o)
		return nil
	}

	if o.name == "" {
		return NewParseError(ErrorTypeBinding, "option name must not be empty")
	}
	if o.grouping && len(o.name) != 1 && o.short == "" {
		return NewParseError(ErrorTypeBinding, fmt.Sprintf("option '%s' needs a single-letter name to group", o.name)).WithOption(o.name)
	}
	for _, n := range []string{o.name, o.short} {
		if n == "" {
			continue
		}
		if _, exists := p.options[n]; exists {
			return NewParseError(ErrorTypeBinding, fmt.Sprintf("option '%s' defined more than once", n)).WithOption(n)
		}
	}

	p.options[o.name] = o
	if o.short != "" {
		p.options[o.short] = o
	}
	p.order = append(p.order, o)
	return nil
}

// MustAdd is like Add but panics on error.
func (p *Parser) MustAdd(name string, t *bind.Target, settings ...OptionSetting) *Parser {
	if err := p.Add(name, t, settings...); err != nil {
		panic(err)
	}
	return p
}

// Parse processes args (without the program name). It returns the
// arguments no option consumed and, if anything failed, an ErrorList.
// Values that parsed are stored even when other arguments fail.
func (p *Parser) Parse(args []string) ([]string, error) {
	if !p.verified && p.registry != nil {
		if err := p.registry.Verify(); err != nil {
			return nil, ErrorList{NewParseError(ErrorTypeBinding, "unresolved bindings").WithCause(err)}
		}
		p.verified = true
	}

	for _, o := range p.order {
		o.count = 0
	}

	var (
		errs      ErrorList
		leftovers []string
		dashdash  bool
		pos       int
	)
	fail := func(e *ParseError) { errs = append(errs, e) }

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" && !dashdash {
			dashdash = true
			continue
		}

		// Bare words, "-" itself and everything after "--" are positional.
		if dashdash || arg == "" || arg == "-" || arg[0] != '-' {
			if len(p.positionals) == 0 {
				leftovers = append(leftovers, arg)
				continue
			}
			o := p.nextPositional(&pos)
			if o == nil {
				fail(NewParseError(ErrorTypeUnhandledPositional,
					fmt.Sprintf("unhandled positional argument '%s'", arg)).WithToken(arg))
				continue
			}
			if e := p.addOccurrence(o, o.name, strslice.Of(arg), arg); e != nil {
				fail(e)
			} else if o.consumeAfter {
				dashdash = true
			}
			continue
		}

		name := strslice.Of(arg).DropFront(1)
		if name.HasPrefix("-") {
			name = name.DropFront(1)
		}

		if handled, e := p.handleOption(name, &i, args); handled {
			if e != nil {
				fail(e)
			}
			continue
		}
		if handled, e := p.handlePrefix(name, arg); handled {
			if e != nil {
				fail(e)
			}
			continue
		}
		if handled, e := p.handleGroup(name, arg); handled {
			errs = append(errs, e...)
			continue
		}

		if p.ignoreUnknown {
			leftovers = append(leftovers, arg)
			continue
		}
		fail(p.unknown(name, arg))
	}

	p.applyEnv(&errs)
	p.checkRequired(&errs)

	return leftovers, errs.err()
}

func (p *Parser) find(name strslice.Slice) *option {
	return p.options[string(name)]
}

// isPossibleOption reports whether the next argument should not be taken as a value.
func (p *Parser) isPossibleOption(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	if arg[1] == '-' {
		return true
	}
	return p.find(strslice.Of(arg[1:])) != nil
}

func (p *Parser) nextPositional(pos *int) *option {
	for *pos < len(p.positionals) {
		o := p.positionals[*pos]
		if o.occurrenceAllowed() {
			return o
		}
		*pos++
	}
	return nil
}

// handleOption matches name exactly, then as name=value.
func (p *Parser) handleOption(name strslice.Slice, i *int, args []string) (bool, *ParseError) {
	arg := args[*i]

	if o := p.find(name); o != nil {
		var val strslice.Slice
		if o.args == ArgRequired {
			if o.prefix || *i+1 >= len(args) || p.isPossibleOption(args[*i+1]) {
				return true, NewParseError(ErrorTypeMissingValue,
					fmt.Sprintf("option '%s' expects an argument", name)).WithOption(o.name).WithToken(arg)
			}
			*i++
			val = strslice.Of(args[*i])
		}
		return true, p.addOccurrence(o, string(name), val, arg)
	}

	eq := name.Find('=', 0)
	if eq == strslice.NPos {
		return false, nil
	}
	optName := name.Front(eq)
	o := p.find(optName)
	if o == nil {
		return false, nil
	}
	if o.args == ArgDisallowed {
		return true, NewParseError(ErrorTypeUnexpectedValue,
			fmt.Sprintf("option '%s' does not allow an argument", optName)).WithOption(o.name).WithToken(arg)
	}
	// A required prefix value keeps the '=' so -D=x yields "=x".
	if !o.prefix || o.args != ArgRequired {
		eq++
	}
	return true, p.addOccurrence(o, string(optName), name.DropFront(eq), arg)
}

// handlePrefix matches the longest prefix option in name, as in -Ipath.
func (p *Parser) handlePrefix(name strslice.Slice, arg string) (bool, *ParseError) {
	for n := name.Len() - 1; n > 0; n-- {
		if o := p.find(name.Front(n)); o != nil && o.prefix {
			return true, p.addOccurrence(o, o.name, name.DropFront(n), arg)
		}
	}
	return false, nil
}

// handleGroup applies -abc as -a -b -c when every letter is a grouping option.
func (p *Parser) handleGroup(name strslice.Slice, arg string) (bool, []*ParseError) {
	if name.Empty() {
		return false, nil
	}

	group := groupPool.Get()
	defer groupPool.Put(group)

	for n := 0; n < name.Len(); n++ {
		o := p.find(name.Substr(n, 1))
		if o == nil || !o.grouping {
			return false, nil
		}
		*group = append(*group, o)
	}

	var errs []*ParseError
	for _, o := range *group {
		if e := p.addOccurrence(o, o.name, "", arg); e != nil {
			errs = append(errs, e)
		}
	}
	return true, errs
}

func (p *Parser) addOccurrence(o *option, name string, val strslice.Slice, arg string) *ParseError {
	if !o.occurrenceAllowed() {
		msg := fmt.Sprintf("option '%s' must occur exactly once", name)
		if o.occurrences == Optional {
			msg = fmt.Sprintf("option '%s' must occur at most once", name)
		}
		return NewParseError(ErrorTypeTooMany, msg).WithOption(o.name).WithToken(arg)
	}

	if err := o.target.Apply(val); err != nil {
		return NewParseError(ErrorTypeInvalidValue,
			fmt.Sprintf("invalid argument '%s' for option '%s'", val, name)).
			WithOption(o.name).WithToken(arg).WithCause(err)
	}

	o.count++
	p.logger.Debug("option accepted",
		slog.String("option", o.name),
		slog.String("value", val.String()),
		slog.Int("occurrence", o.count))
	return nil
}

func (p *Parser) unknown(name strslice.Slice, arg string) *ParseError {
	e := NewParseError(ErrorTypeUnknownOption, fmt.Sprintf("unknown option '%s'", arg)).WithToken(arg)

	if before, _, found := name.Cut("="); found {
		name = before
	}
	if p.maxDistance > 0 {
		if s := fuzzy.Suggest(name.String(), p.longNames(), p.maxDistance); s != "" {
			e.WithSuggestion("--" + s)
		}
	}
	return e
}

func (p *Parser) longNames() []string {
	names := make([]string, 0, len(p.order))
	for _, o := range p.order {
		if !o.positional && len(o.name) > 1 {
			names = append(names, o.name)
		}
	}
	slices.Sort(names)
	return names
}

// applyEnv feeds the first non-empty listed variable to options that did
// not appear on the command line.
func (p *Parser) applyEnv(errs *ErrorList) {
	for _, o := range p.order {
		if o.count > 0 || len(o.env) == 0 {
			continue
		}
		for _, key := range o.env {
			v, ok := p.lookupEnv(key)
			if !ok || v == "" {
				continue
			}
			if e := p.addOccurrence(o, o.name, strslice.Of(v), "$"+key); e != nil {
				*errs = append(*errs, e)
			}
			break
		}
	}
}

func (p *Parser) checkRequired(errs *ErrorList) {
	for _, o := range p.order {
		if !o.required() || o.count > 0 {
			continue
		}
		msg := fmt.Sprintf("option '%s' must be specified at least once", o.name)
		if o.positional {
			msg = fmt.Sprintf("missing positional argument '%s'", o.name)
		}
		*errs = append(*errs, NewParseError(ErrorTypeMissingRequired, msg).WithOption(o.name))
	}
}
