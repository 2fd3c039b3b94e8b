package cmdline

import (
	"errors"
	"strings"
)

// ErrorType categorises parse failures.
type ErrorType string

const (
	ErrorTypeUnknownOption       ErrorType = "unknown_option"
	ErrorTypeInvalidValue        ErrorType = "invalid_value"
	ErrorTypeMissingValue        ErrorType = "missing_value"
	ErrorTypeUnexpectedValue     ErrorType = "unexpected_value"
	ErrorTypeTooMany             ErrorType = "too_many"
	ErrorTypeMissingRequired     ErrorType = "missing_required"
	ErrorTypeUnhandledPositional ErrorType = "unhandled_positional"
	ErrorTypeBinding             ErrorType = "binding"
)

// ParseError is one failure found while parsing a command line.
type ParseError struct {
	Type       ErrorType
	Message    string
	Option     string // option name as written, without dashes
	Token      string // offending argument, if any
	Suggestion string
	Err        error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError with the given type and message.
func NewParseError(errType ErrorType, message string) *ParseError {
	return &ParseError{Type: errType, Message: message}
}

// WithOption records the option name.
func (e *ParseError) WithOption(name string) *ParseError {
	e.Option = name
	return e
}

// WithToken records the offending argument.
func (e *ParseError) WithToken(tok string) *ParseError {
	e.Token = tok
	return e
}

// WithSuggestion records a likely intended option name.
func (e *ParseError) WithSuggestion(s string) *ParseError {
	e.Suggestion = s
	return e
}

// WithCause records the underlying error.
func (e *ParseError) WithCause(err error) *ParseError {
	e.Err = err
	return e
}

// ErrorList holds every failure of one Parse call, in argument order.
type ErrorList []*ParseError

func (l ErrorList) Error() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Has reports whether the list contains an error of type t.
func (l ErrorList) Has(t ErrorType) bool {
	for _, e := range l {
		if e.Type == t {
			return true
		}
	}
	return false
}

func (l ErrorList) err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Errors flattens err into its ParseErrors. Other errors are returned as a
// single binding ParseError.
func Errors(err error) []*ParseError {
	if err == nil {
		return nil
	}
	var list ErrorList
	if errors.As(err, &list) {
		return list
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return []*ParseError{pe}
	}
	return []*ParseError{NewParseError(ErrorTypeBinding, "configuration error").WithCause(err)}
}
