package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates how a validity problem affects a language.
type Severity int

// Severity levels for problems.
const (
	// SeverityError blocks generation-dependent features (synthesis, translation).
	SeverityError Severity = iota
	// SeverityWarning flags something the author probably wants to fix but
	// does not block anything.
	SeverityWarning
	// SeverityInfo is informational feedback.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	default:
		return SeverityWarning, false
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	v, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", text)
	}
	*s = v
	return nil
}

// Problem is one validity finding reported to the presentation layer.
type Problem struct {
	Severity  Severity `json:"severity"`
	Component string   `json:"component"` // graphemes, syllables, weights, grammar
	Message   string   `json:"message"`
}

// Problems is a list of findings.
type Problems []Problem

// HasErrors reports whether any problem is an error.
func (p Problems) HasErrors() bool {
	for _, pr := range p {
		if pr.Severity == SeverityError {
			return true
		}
	}
	return false
}

// AtLeast returns the problems that are at least as severe as min.
func (p Problems) AtLeast(min Severity) Problems {
	var out Problems
	for _, pr := range p {
		if pr.Severity <= min {
			out = append(out, pr)
		}
	}
	return out
}
