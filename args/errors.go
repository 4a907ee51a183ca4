package args

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrLocked is returned by declarations made after a successful parse.
	ErrLocked = errors.New("args: parser is locked")

	ErrUnsupportedType = errors.New("args: unsupported type")
	ErrInvalidLiteral  = errors.New("args: invalid literal")
	ErrInvalidOption   = errors.New("args: invalid optional declaration")
)

// Condition is a problem found while scanning tokens. Conditions do not
// stop the scan; they are reported together in a ParseError.
type Condition uint8

const (
	NoRequiredTypes Condition = iota + 1
	TooManyArguments
	UnterminatedQuote
	UnterminatedBrace
	UnknownOptional
	MissingOptionValue
)

func (c Condition) String() string {
	switch c {
	case NoRequiredTypes:
		return "required arguments unspecified"
	case TooManyArguments:
		return "too many arguments"
	case UnterminatedQuote:
		return "unended quotes"
	case UnterminatedBrace:
		return "unended curvy brackets"
	case UnknownOptional:
		return "unknown optional argument"
	case MissingOptionValue:
		return "optional argument without value"
	default:
		return "unknown condition"
	}
}

// Error lets a Condition be matched with errors.Is against a ParseError.
func (c Condition) Error() string {
	return "args: " + c.String()
}

// ParseError carries every distinct condition recorded in one pass.
type ParseError struct {
	Conditions []Condition
}

func newParseError(conditions map[Condition]struct{}) *ParseError {
	e := &ParseError{Conditions: make([]Condition, 0, len(conditions))}
	for c := range conditions {
		e.Conditions = append(e.Conditions, c)
	}
	slices.Sort(e.Conditions)

	return e
}

func (e *ParseError) Error() string {
	parts := make([]string, len(e.Conditions))
	for i, c := range e.Conditions {
		parts[i] = c.String()
	}

	return "args: errors with command: " + strings.Join(parts, ", ")
}

func (e *ParseError) Has(c Condition) bool {
	return slices.Contains(e.Conditions, c)
}

func (e *ParseError) Unwrap() []error {
	errs := make([]error, len(e.Conditions))
	for i, c := range e.Conditions {
		errs[i] = c
	}

	return errs
}

// ConversionError reports a token that could not be coerced to its
// declared type. It wraps ErrInvalidLiteral or ErrUnsupportedType.
type ConversionError struct {
	Type   Type
	Input  string
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("args: cannot convert %q to %s", e.Input, e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func invalidLiteral(t Type, input string, reason string, cause error) error {
	var errs error = ErrInvalidLiteral
	if cause != nil {
		errs = errors.Join(ErrInvalidLiteral, cause)
	}

	return &ConversionError{Type: t, Input: input, Reason: reason, Err: errs}
}

func unsupportedType(t Type, input string) error {
	return &ConversionError{
		Type:   t,
		Input:  input,
		Reason: fmt.Sprintf("object type %s is not supported", t.Name()),
		Err:    ErrUnsupportedType,
	}
}
