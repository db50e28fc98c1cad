package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "graph.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		if msg := err.Error(); msg != "parse error in graph.yaml at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("errors.Is matches sentinel", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", &ParseError{Path: "x.yaml"})
		if !errors.Is(err, ErrParse) {
			t.Error("expected errors.Is(err, ErrParse) to be true")
		}
		if errors.Is(err, ErrReference) {
			t.Error("ParseError must not match ErrReference")
		}
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("Unresolved names the ref", func(t *testing.T) {
		err := Unresolved("#/components/schemas/Missing")
		if msg := err.Error(); msg != "reference error: #/components/schemas/Missing: unresolved reference" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Entity context is included when it differs from the ref", func(t *testing.T) {
		err := &ReferenceError{
			Ref:     "#/components/schemas/Missing",
			Entity:  "#/components/schemas/User",
			Message: "unresolved reference",
		}
		want := "reference error: #/components/schemas/Missing (while resolving #/components/schemas/User): unresolved reference"
		if err.Error() != want {
			t.Errorf("got %q, want %q", err.Error(), want)
		}
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("walker: %w", Unresolved("#/A"))
		var refErr *ReferenceError
		if !errors.As(wrapped, &refErr) {
			t.Fatal("expected errors.As to find ReferenceError")
		}
		if refErr.Ref != "#/A" {
			t.Errorf("expected Ref #/A, got %s", refErr.Ref)
		}
		if !errors.Is(wrapped, ErrReference) {
			t.Error("expected errors.Is(err, ErrReference)")
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("lookup failed")
		err := &ReferenceError{Ref: "#/A", Cause: cause}
		//nolint:errorlint // testing pointer identity
		if err.Unwrap() != cause {
			t.Error("Unwrap should return cause")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ConfigError{
			Option:  "flavor",
			Value:   "elm",
			Message: "unknown flavor",
		}
		if msg := err.Error(); msg != "configuration error for flavor (value: elm): unknown flavor" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("errors.Is matches sentinel", func(t *testing.T) {
		if !errors.Is(&ConfigError{}, ErrConfig) {
			t.Error("expected errors.Is(err, ErrConfig)")
		}
	})
}
