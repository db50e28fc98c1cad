// Package issues provides the issue type reported while generating output.
package issues

import (
	"fmt"

	"github.com/erraggy/oasgen/internal/severity"
)

// Issue is a single non-fatal problem found while generating one entity.
type Issue struct {
	// Path is the JSON pointer of the node, e.g. "#/components/schemas/Pet/properties/tags".
	Path string
	// Entity is the id of the top-level entity being generated.
	Entity string
	// Flavor is the output flavor that reported the issue.
	Flavor string
	// Message is a human-readable description.
	Message string
	// Severity indicates the severity level.
	Severity severity.Severity
	// Context provides additional detail (optional).
	Context string
}

// String formats the issue with a severity marker.
func (i Issue) String() string {
	where := i.Path
	if where == "" {
		where = i.Entity
	}
	if i.Flavor != "" {
		where = fmt.Sprintf("%s [%s]", where, i.Flavor)
	}
	result := fmt.Sprintf("%s %s: %s", i.Severity.Symbol(), where, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// Counts tallies issues by severity.
func Counts(list []Issue) (info, warning, critical int) {
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityInfo:
			info++
		case severity.SeverityWarning:
			warning++
		case severity.SeverityCritical:
			critical++
		}
	}
	return info, warning, critical
}

// Filter returns the issues at or above min.
func Filter(list []Issue, min severity.Severity) []Issue {
	var out []Issue
	for _, i := range list {
		if i.Severity >= min {
			out = append(out, i)
		}
	}
	return out
}
