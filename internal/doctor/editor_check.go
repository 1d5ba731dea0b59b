package doctor

import (
	"fmt"
	"strings"

	"github.com/leeguoo/extcheck/internal/detect"
	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/errors"
	"github.com/leeguoo/extcheck/internal/extensions"
)

// ResolutionCheck runs full editor resolution, as the check command would.
type ResolutionCheck struct {
	det *detect.Detector
}

var _ Check = (*ResolutionCheck)(nil)

// NewResolutionCheck creates a new ResolutionCheck.
func NewResolutionCheck(det *detect.Detector) *ResolutionCheck {
	return &ResolutionCheck{det: det}
}

// Name returns the unique identifier for this check.
func (c *ResolutionCheck) Name() string {
	return "editor-resolution"
}

// Category returns the grouping for this check.
func (c *ResolutionCheck) Category() string {
	return "editor"
}

// Run executes the check.
func (c *ResolutionCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	resolved, err := c.det.Resolve()
	switch {
	case errors.Is(err, errors.ErrCLIConflict):
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = `in VSCode, run "Shell Command: Install 'code' command in PATH"`
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = "no editor CLI could be resolved"
		result.FixHint = "install VSCode, Cursor or WindSurf and enable its shell command"
		return result
	}

	eds := resolved.Editors()
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("would check %s", editor.Names(eds))
	result.Details = map[string]any{
		"editors": eds,
		"primary": string(resolved.Name),
	}
	return result
}

// ExtensionsCheck reconciles the resolved editors against the required
// extensions. With --fix it installs what is missing.
type ExtensionsCheck struct {
	det        *detect.Detector
	reconciler *extensions.Reconciler
	installer  *extensions.Installer
	required   []string

	results []extensions.Result
}

var (
	_ Check = (*ExtensionsCheck)(nil)
	_ Fixer = (*ExtensionsCheck)(nil)
)

// NewExtensionsCheck creates a new ExtensionsCheck.
func NewExtensionsCheck(det *detect.Detector, reconciler *extensions.Reconciler, installer *extensions.Installer, required []string) *ExtensionsCheck {
	return &ExtensionsCheck{
		det:        det,
		reconciler: reconciler,
		installer:  installer,
		required:   required,
	}
}

// Name returns the unique identifier for this check.
func (c *ExtensionsCheck) Name() string {
	return "required-extensions"
}

// Category returns the grouping for this check.
func (c *ExtensionsCheck) Category() string {
	return "extensions"
}

// Run executes the check.
func (c *ExtensionsCheck) Run() *CheckResult {
	c.results = nil
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	resolved, err := c.det.Resolve()
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: no editor resolved"
		return result
	}

	c.results = c.reconciler.Reconcile(resolved.Editors(), c.required)

	var failed, missing []string
	for _, r := range c.results {
		switch r.Outcome {
		case extensions.OutcomeQueryFailed:
			failed = append(failed, string(r.Editor.Name))
		case extensions.OutcomeMissing:
			missing = append(missing, fmt.Sprintf("%s (%s)", r.Editor.Name, strings.Join(r.Missing, ", ")))
		}
	}
	result.Details = map[string]any{
		"required": c.required,
		"results":  c.results,
	}

	switch {
	case len(failed) > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot list extensions for %s", strings.Join(failed, ", "))
		result.FixHint = "make sure the editor CLI runs: <command> --list-extensions"
	case len(missing) > 0:
		result.Status = SeverityWarning
		result.Message = "missing extensions: " + strings.Join(missing, "; ")
		result.Fixable = true
		result.FixHint = "run: extcheck install (or extcheck doctor --fix)"
	default:
		result.Status = SeverityPass
		result.Message = "all required extensions installed"
	}
	return result
}

// CanFix returns true if the last Run found missing extensions.
func (c *ExtensionsCheck) CanFix() bool {
	for _, r := range c.results {
		if r.Outcome == extensions.OutcomeMissing {
			return true
		}
	}
	return false
}

// Fix installs the missing extensions found by the last Run.
func (c *ExtensionsCheck) Fix() []FixResult {
	installs := c.installer.InstallMissing(c.results, nil)

	out := make([]FixResult, 0, len(installs))
	for _, in := range installs {
		fr := FixResult{
			Target: fmt.Sprintf("%s: %s", in.Editor, in.Extension),
			Fixed:  in.OK(),
			Error:  in.Err,
		}
		if in.OK() {
			fr.Description = "installed"
		} else {
			fr.Description = "install failed: " + in.Err.Error()
		}
		out = append(out, fr)
	}
	return out
}
