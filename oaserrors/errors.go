// Package oaserrors provides structured error types for oasgen.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to tell a broken schema graph apart from a
// bad option or an unreadable input document.
//
// # Error Categories
//
//   - ParseError: the schema-graph document could not be decoded
//   - ReferenceError: a $ref names a schema the graph does not contain
//   - ConfigError: invalid generator, walker or naming configuration
//
// # Usage with errors.As
//
//	result, err := generator.GenerateWithOptions(generator.WithFilePath("graph.yaml"))
//	if err != nil {
//	    var refErr *oaserrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        fmt.Println("missing schema:", refErr.Ref)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the input document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a $ref could not be resolved against the schema graph.
	ErrReference = errors.New("reference error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode a schema-graph document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	return withDetail(msg, e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReferenceError reports a $ref with no corresponding schema in the graph.
//
// Resolution of the top-level entity that hit the reference is aborted; the
// error is not retried because the cause is structural.
type ReferenceError struct {
	// Ref is the reference id that failed to resolve
	Ref string
	// Entity is the id of the top-level entity being resolved, if known
	Entity string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Unresolved returns a ReferenceError for a ref that has no target.
func Unresolved(ref string) *ReferenceError {
	return &ReferenceError{Ref: ref, Message: "unresolved reference"}
}

// Error returns a human-readable error message. It always names the ref.
func (e *ReferenceError) Error() string {
	msg := "reference error: " + e.Ref
	if e.Entity != "" && e.Entity != e.Ref {
		msg += " (while resolving " + e.Entity + ")"
	}
	return withDetail(msg, e.Message, e.Cause)
}

func (e *ReferenceError) Unwrap() error { return e.Cause }
func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// ConfigError represents an invalid configuration or input.
// This includes unknown flavors, malformed naming templates and conflicting options.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return withDetail(msg, e.Message, e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// withDetail appends the optional message and cause to msg.
func withDetail(msg, message string, cause error) string {
	if message != "" {
		msg += ": " + message
	}
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}
