package extensions

import (
	"log/slog"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/logging"
)

// InstallResult is the outcome of one --install-extension invocation.
type InstallResult struct {
	Editor    editor.Name `json:"editor" yaml:"editor"`
	Extension string      `json:"extension" yaml:"extension"`
	Err       error       `json:"-" yaml:"-"`
}

// OK reports whether the install succeeded.
func (r InstallResult) OK() bool {
	return r.Err == nil
}

// Installer installs extensions through an editor CLI.
type Installer struct {
	runner Runner
	logger *slog.Logger
}

// NewInstaller returns an Installer. A nil logger discards.
func NewInstaller(runner Runner, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Installer{runner: runner, logger: logger}
}

// Install installs ids one at a time. Each id is attempted exactly once,
// and a failure does not stop the ones after it. The callback, if set,
// runs before each attempt.
func (i *Installer) Install(ed editor.Resolved, ids []string, before func(id string)) []InstallResult {
	results := make([]InstallResult, 0, len(ids))
	for _, id := range ids {
		if before != nil {
			before(id)
		}
		_, err := i.runner.Run(ed.Command, "--install-extension", id)
		if err != nil {
			i.logger.Warn("extension install failed", "editor", ed.Name, "extension", id, "error", err)
		} else {
			i.logger.Info("extension installed", "editor", ed.Name, "extension", id)
		}
		results = append(results, InstallResult{Editor: ed.Name, Extension: id, Err: err})
	}
	return results
}

// InstallMissing installs the missing extensions of every result that has
// any. Editors whose query failed are skipped.
func (i *Installer) InstallMissing(results []Result, before func(ed editor.Resolved, id string)) []InstallResult {
	var out []InstallResult
	for _, r := range results {
		if r.Outcome != OutcomeMissing {
			continue
		}
		ed := r.Editor
		var hook func(string)
		if before != nil {
			hook = func(id string) { before(ed, id) }
		}
		out = append(out, i.Install(ed, r.Missing, hook)...)
	}
	return out
}

// Failed counts failed installs.
func Failed(results []InstallResult) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Select returns copies of results whose missing lists keep only the
// extensions keep accepts. Results left with nothing missing become Ok.
func Select(results []Result, keep func(ed editor.Name, id string) bool) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Outcome != OutcomeMissing {
			out = append(out, r)
			continue
		}
		var ids []string
		for _, id := range r.Missing {
			if keep(r.Editor.Name, id) {
				ids = append(ids, id)
			}
		}
		r.Missing = ids
		if len(ids) == 0 {
			r.Outcome = OutcomeOK
		}
		out = append(out, r)
	}
	return out
}
