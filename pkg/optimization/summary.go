// Package optimization provides shared data structures for goal seek results.
package optimization

import "fmt"

// Scopes identify which model a goal seek ran against.
const (
	ScopeLease  = "lease"
	ScopeRunout = "runout"
)

// Summary captures the result of a single goal seek.
type Summary struct {
	Scope           string   `json:"scope" yaml:"scope"`
	TargetName      string   `json:"targetName" yaml:"targetName"`
	Field           string   `json:"field" yaml:"field"`
	KPI             string   `json:"kpi" yaml:"kpi"`
	Method          string   `json:"method" yaml:"method"`
	Target          float64  `json:"target" yaml:"target"`
	Original        float64  `json:"original" yaml:"original"`
	Value           float64  `json:"value" yaml:"value"`
	Achieved        float64  `json:"achieved" yaml:"achieved"`
	Residual        float64  `json:"residual" yaml:"residual"`
	Iterations      int      `json:"iterations" yaml:"iterations"`
	FunctionCalls   int      `json:"functionCalls" yaml:"functionCalls"`
	Converged       bool     `json:"converged" yaml:"converged"`
	Notes           []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty" yaml:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty" yaml:"valueDisplay,omitempty"`
}

// String renders a one-line description of the summary.
func (s Summary) String() string {
	status := "converged"
	if !s.Converged {
		status = "did not converge"
	}
	return fmt.Sprintf("%s %s: %s %s -> %s for %s %.2f (%s after %d iterations)",
		s.Scope, s.TargetName, s.Field, s.OriginalDisplay, s.ValueDisplay, s.KPI, s.Target, status, s.Iterations)
}
