// Package convert implements the value-conversion facade generated semantic
// actions use to coerce value-stack items into user types.
package convert

import (
	"reflect"
	"sync"

	"github.com/llxrt/llxrt/errors"
)

// Converter is the "provides-converter" capability a UserActions
// implementation may advertise: try_convert(value, target_type) → (ok,
// converted).
type Converter interface {
	TryConvert(value any, target reflect.Type) (any, bool)
}

// Scope is a per-parse-invocation converter slot, threaded alongside the
// token stream instead of living in process-wide mutable state.
type Scope struct {
	active Converter
}

// NewScope creates a Scope, optionally seeded with a converter.
func NewScope(converter Converter) *Scope {
	return &Scope{active: converter}
}

// Active returns the scope's current converter, or nil.
func (s *Scope) Active() Converter {
	if s == nil {
		return nil
	}
	return s.active
}

// ConvertTo resolves value into T: first by direct type assertion, then by
// delegating to scope's active converter, then failing with a
// ValueConversionError naming both types.
func ConvertTo[T any](scope *Scope, value any) (T, error) {
	var zero T

	if v, ok := value.(T); ok {
		return v, nil
	}

	if conv := scope.Active(); conv != nil {
		target := reflect.TypeOf(zero)
		if converted, ok := conv.TryConvert(value, target); ok {
			if v, ok := converted.(T); ok {
				return v, nil
			}
		}
	}

	return zero, errors.Format(errors.ValueConversionError,
		"cannot convert value of type %s to %s: configure a converter", sourceTypeName(value), targetTypeName(zero))
}

func sourceTypeName(value any) string {
	if value == nil {
		return "<nil>"
	}
	return reflect.TypeOf(value).String()
}

func targetTypeName(zero any) string {
	t := reflect.TypeOf(zero)
	if t == nil {
		return "interface{}"
	}
	return t.String()
}

// Global is a process-wide "active converter" slot for callers that want
// that behavior instead of the per-invocation Scope. Access is guarded by
// a mutex and released via scoped acquisition so the previous value is
// restored on every exit path, including a panicking semantic action.
var (
	globalMu   sync.Mutex
	globalConv Converter
)

// Acquire installs converter as the active global converter and returns a
// release function that restores the previous value. Callers must defer the
// release immediately:
//
//	release := convert.Acquire(myConverter)
//	defer release()
func Acquire(converter Converter) func() {
	globalMu.Lock()
	previous := globalConv
	globalConv = converter
	globalMu.Unlock()

	return func() {
		globalMu.Lock()
		globalConv = previous
		globalMu.Unlock()
	}
}

// GlobalConvertTo resolves against the process-wide slot installed by
// Acquire. Concurrent parses that both supply converters will race on this
// slot; prefer Scope-based ConvertTo when parses run concurrently.
func GlobalConvertTo[T any](value any) (T, error) {
	globalMu.Lock()
	conv := globalConv
	globalMu.Unlock()
	return ConvertTo[T](NewScope(conv), value)
}
