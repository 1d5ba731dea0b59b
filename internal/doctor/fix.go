package doctor

// Fixer is an optional interface that checks can implement to support
// remediation with doctor --fix. CanFix and Fix are only meaningful
// after Run.
type Fixer interface {
	// CanFix returns true if the last Run found fixable issues.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run.
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Target names what was fixed, e.g. "Cursor: esbenp.prettier-vscode".
	Target string `json:"target"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// Fix runs Fix on every registered check that implements Fixer and has
// something to fix. Call it after Run.
func (r *Runner) Fix() []FixResult {
	var out []FixResult
	for _, c := range r.checks {
		f, ok := c.(Fixer)
		if !ok || !f.CanFix() {
			continue
		}
		out = append(out, f.Fix()...)
	}
	return out
}
