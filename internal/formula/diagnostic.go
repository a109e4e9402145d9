// internal/formula/diagnostic.go
package formula

import (
	"encoding/json"
	"fmt"
)

// Severity distinguishes hard syntax errors from style warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

func (s Severity) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// Diagnostic is a positioned message produced during tokenizing, parsing or
// validation. Start and End are byte offsets into the source statement;
// End is exclusive. Diagnostics are never mutated after creation.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %d-%d: %s", d.Severity, d.Start, d.End, d.Message)
}

func errorDiag(start, end int, msg string) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Message: msg, Start: start, End: end}
}

func warnDiag(start, end int, msg string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: msg, Start: start, End: end}
}
