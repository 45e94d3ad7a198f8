package errors

import (
	"errors"
	"testing"
)

func TestFormatBuildsMessage(t *testing.T) {
	e := Format(SyntaxError, "expected %s, found %s", "ident", "EOF")
	if e.Kind != SyntaxError {
		t.Fatalf("expecting SyntaxError, got %v", e.Kind)
	}
	if e.Error() != "expected ident, found EOF" {
		t.Fatalf("unexpected message: %s", e.Error())
	}
}

func TestNewAppendsPosition(t *testing.T) {
	e := New(SyntaxError, "unexpected token", "input.txt", 3, 7)
	want := "unexpected token in input.txt at line 3 col 7"
	if e.Error() != want {
		t.Fatalf("expecting %q, got %q", want, e.Error())
	}
}

func TestCauseIsNilWithoutWithCause(t *testing.T) {
	e := Format(SemanticMappingError, "boom")
	if Cause(e) != nil {
		t.Fatalf("expecting nil cause, got %v", Cause(e))
	}
}

func TestWithCauseChainsAndSurfacesLeaf(t *testing.T) {
	leaf := Format(SemanticMappingError, "raw children rejected")
	composite := Format(SemanticMappingError, "both attempts failed").WithCause(leaf)

	cause := Cause(composite)
	if cause != leaf {
		t.Fatalf("expecting the leaf error back, got %v", cause)
	}
}

func TestWithCausePreservesOriginalErrorViaStdlibUnwrap(t *testing.T) {
	leaf := Format(InternalParseError, "stack underrun")
	composite := Format(SemanticMappingError, "wrapper").WithCause(leaf)

	if !errors.Is(composite, composite) {
		t.Fatalf("expecting composite to be itself under errors.Is")
	}
	if composite.Unwrap() == nil {
		t.Fatalf("expecting Unwrap to expose the wrapped pkg/errors chain")
	}
}
