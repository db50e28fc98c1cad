// Package severity provides the severity levels of generation issues.
//
// Levels are ordered from least to most severe: Info < Warning < Critical.
// Unsupported shapes and skipped features are Info, depth degradations are
// Warning, and anything that aborts an entity is Critical.
package severity

// Severity indicates how serious a generation issue is.
type Severity int

const (
	// SeverityInfo is a notice about a choice made during generation.
	SeverityInfo Severity = iota

	// SeverityWarning marks output that was degraded but still produced.
	SeverityWarning

	// SeverityCritical marks an entity whose output could not be produced.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Symbol returns the marker printed in front of an issue.
func (s Severity) Symbol() string {
	switch s {
	case SeverityCritical:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}
