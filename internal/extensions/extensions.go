package extensions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/logging"
)

// required is the built-in list, in reporting order.
var required = []string{
	"dbaeumer.vscode-eslint",
	"esbenp.prettier-vscode",
}

// Required returns the extensions every editor must have.
func Required() []string {
	out := make([]string, len(required))
	copy(out, required)
	return out
}

// Runner invokes an editor CLI and returns its standard output.
// system.Probe satisfies it.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// Outcome classifies one editor's check.
type Outcome string

const (
	// OutcomeOK means every required extension is installed.
	OutcomeOK Outcome = "ok"
	// OutcomeMissing means at least one required extension is absent.
	OutcomeMissing Outcome = "missing"
	// OutcomeQueryFailed means the installed list could not be read.
	OutcomeQueryFailed Outcome = "query-failed"
)

// Result is the check result for one editor.
type Result struct {
	Editor  editor.Resolved `json:"editor" yaml:"editor"`
	Outcome Outcome         `json:"outcome" yaml:"outcome"`
	// Missing lists absent extensions in required-list order.
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	// Reason describes a failed query.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// OK reports whether the editor needs nothing.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// AllOK reports whether every result is OK. An empty slice is not OK:
// nothing was checked.
func AllOK(results []Result) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if !r.OK() {
			return false
		}
	}
	return true
}

// Missing returns the entries of required that are not in installed,
// keeping required's order. Matching is exact.
func Missing(required, installed []string) []string {
	have := make(map[string]struct{}, len(installed))
	for _, id := range installed {
		have[id] = struct{}{}
	}

	var out []string
	for _, id := range required {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// ParseList splits --list-extensions output into identifiers, one per
// non-blank line.
func ParseList(output string) []string {
	var ids []string
	for _, line := range strings.Split(output, "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Reconciler checks editors against a required list.
type Reconciler struct {
	runner Runner
	logger *slog.Logger
}

// NewReconciler returns a Reconciler. A nil logger discards.
func NewReconciler(runner Runner, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Reconciler{runner: runner, logger: logger}
}

// Installed lists the extensions the editor CLI reports.
func (r *Reconciler) Installed(command string) ([]string, error) {
	out, err := r.runner.Run(command, "--list-extensions")
	if err != nil {
		return nil, err
	}
	r.logger.Log(context.Background(), logging.LevelTrace, "extension listing", "command", command, "output", string(out))
	return ParseList(string(out)), nil
}

// Check reconciles a single editor.
func (r *Reconciler) Check(ed editor.Resolved, required []string) Result {
	res := Result{Editor: ed}
	if len(required) == 0 {
		res.Outcome = OutcomeOK
		return res
	}

	installed, err := r.Installed(ed.Command)
	if err != nil {
		r.logger.Debug("extension query failed", "editor", ed.Name, "command", ed.Command, "error", err)
		res.Outcome = OutcomeQueryFailed
		res.Reason = err.Error()
		return res
	}

	res.Missing = Missing(required, installed)
	if len(res.Missing) == 0 {
		res.Outcome = OutcomeOK
	} else {
		res.Outcome = OutcomeMissing
	}
	r.logger.Debug("extensions checked",
		"editor", ed.Name, "installed", len(installed), "missing", len(res.Missing))
	return res
}

// Reconcile checks every editor in order. One result per editor is
// returned regardless of failures.
func (r *Reconciler) Reconcile(editors []editor.Resolved, required []string) []Result {
	results := make([]Result, 0, len(editors))
	for _, ed := range editors {
		results = append(results, r.Check(ed, required))
	}
	return results
}
