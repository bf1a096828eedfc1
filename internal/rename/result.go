package rename

import "fmt"

// Result aggregates a transaction or batch: how many entities were renamed,
// the per-step errors, and the non-fatal warnings. Warnings (failed backup,
// failed rebind) never count against success; a batch with only warnings is
// still a successful batch.
type Result struct {
	Success  int      `json:"success"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorCount returns the number of hard errors.
func (r *Result) ErrorCount() int { return len(r.Errors) }

// OK reports whether the operation had no hard errors.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// Errorf records one hard error.
func (r *Result) Errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Warnf records one non-fatal warning.
func (r *Result) Warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge folds another result into this one.
func (r *Result) Merge(other Result) {
	r.Success += other.Success
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
