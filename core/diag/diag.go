// Package diag defines the diagnostics emitted by the analytic core.
//
// Diagnostics are data, not errors: recoverable conditions such as an
// unallocable working variable are reported by appending a diagnostic to the
// caller's list, never by raising a fatal error.
package diag

import (
	"github.com/verity-lang/verity/core/grammar"
)

// Severity follows the usual language-server scale.
type Severity uint8

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// String returns a string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code identifies a diagnostic class.
type Code string

// CodeNoUnusedVar flags an occurrence of a working variable for which the
// theory holds no unused variable of the required kind.
const CodeNoUnusedVar Code = "no-unused-variable-of-kind"

// Diagnostic is one reported finding, anchored at an exact source range.
type Diagnostic struct {
	Message  string
	Range    grammar.Range
	Code     Code
	Severity Severity
}

// Append records a warning diagnostic on the target list. The signature
// mirrors the diagnostics sink contract: message text, source range, warning
// code, target list.
func Append(list *[]Diagnostic, message string, rng grammar.Range, code Code) {
	*list = append(*list, Diagnostic{
		Message:  message,
		Range:    rng,
		Code:     code,
		Severity: SeverityWarning,
	})
}
