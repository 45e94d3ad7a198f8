// Package errors defines the error type shared by every runtime package.
//
// All fatal conditions the engine can raise are represented by a single
// *Error carrying a Kind (see the Kind constants) rather than distinct
// Go types, so callers can switch on Kind without type-asserting through
// a dozen error structs.
package errors

import (
	"fmt"

	perrors "github.com/pkg/errors"
)

// Kind identifies which of the engine's fatal error conditions occurred.
type Kind int

const (
	// SyntaxError: expected terminal t, observed a mismatched token or EOF.
	SyntaxError Kind = iota + 1

	// PredictionFailure: a lookahead DFA terminated without any production number.
	PredictionFailure

	// InternalParseError: the value stack underran at an end-of-production marker.
	InternalParseError

	// SemanticMappingError: a semantic action rejected both raw and filtered children.
	SemanticMappingError

	// ValueConversionError: convert.To could not coerce a value to the requested type.
	ValueConversionError

	// TableError: a grammar table failed validation or (de)serialization.
	TableError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case PredictionFailure:
		return "PredictionFailure"
	case InternalParseError:
		return "InternalParseError"
	case SemanticMappingError:
		return "SemanticMappingError"
	case ValueConversionError:
		return "ValueConversionError"
	case TableError:
		return "TableError"
	default:
		return "UnknownError"
	}
}

// SourcePos is implemented by anything an error can be positioned against;
// token.Token and charstream.Position both satisfy it.
type SourcePos interface {
	SourceName() string
	Line() int
	Col() int
}

// Error is the concrete error type returned by every runtime package.
type Error struct {
	Kind       Kind
	Message    string
	SourceName string
	Line, Col  int
	cause      error
}

// New creates an Error, appending source position to the message when both
// name and a non-zero line are available.
func New(kind Kind, msg, name string, line, col int) *Error {
	if name != "" && line != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{Kind: kind, Message: msg, SourceName: name, Line: line, Col: col}
}

// Format builds an Error with no position information.
func Format(kind Kind, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return New(kind, msg, "", 0, 0)
}

// FormatPos builds an Error positioned against pos.
func FormatPos(pos SourcePos, kind Kind, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return New(kind, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// WithCause chains cause using github.com/pkg/errors so Cause(e) recovers it
// and the printed message keeps the retried failure visible.
func (e *Error) WithCause(cause error) *Error {
	wrapped := *e
	wrapped.cause = perrors.Wrap(cause, e.Message)
	return &wrapped
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Cause returns the chained retry failure, if any. An *Error only exposes a
// cause to github.com/pkg/errors' causer walk when WithCause actually set
// one: unconditionally implementing Cause() on *Error would make a
// cause-less Error look like a wrapper around nil and swallow it.
func Cause(e error) error {
	if ee, ok := e.(*Error); ok && ee.cause != nil {
		return perrors.Cause(ee.cause)
	}
	return perrors.Cause(e)
}
