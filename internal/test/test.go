// Package test contains small assertion helpers shared by the runtime's test suites.
package test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/llxrt/llxrt/errors"
)

func fatalf(t *testing.T, message string, params ...any) {
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

func Assert(t *testing.T, cond bool, message string, params ...any) {
	if !cond {
		fatalf(t, message, params...)
	}
}

func Expect(t *testing.T, cond bool, expected, got any) {
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

func ExpectBool(t *testing.T, expected, got bool) {
	Expect(t, expected == got, expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	Expect(t, expected == got, expected, got)
}

// ExpectErrorKind fails unless e is a *errors.Error carrying the given Kind.
func ExpectErrorKind(t *testing.T, expected errors.Kind, e error) {
	if e != nil {
		ee, valid := e.(*errors.Error)
		if valid && ee.Kind == expected {
			return
		}
	}

	fatalf(t, "expecting error kind %v, got %v", expected, e)
}
