package doctor

import (
	"fmt"
	"strings"

	"github.com/leeguoo/extcheck/internal/detect"
	"github.com/leeguoo/extcheck/internal/system"
)

// shellCommandHint is the editor palette action that installs a CLI.
const shellCommandHint = `run "Shell Command: Install '<command>' command in PATH" from the editor's command palette`

// commandEntry describes one editor command found on the search path.
type commandEntry struct {
	Command  string `json:"command"`
	Location string `json:"location"`
	Verified bool   `json:"verified"`
	Editor   string `json:"editor"`
}

// SearchPathCheck looks up every editor command on the search path and
// reports commands whose location belongs to a different editor.
type SearchPathCheck struct {
	det *detect.Detector
}

var _ Check = (*SearchPathCheck)(nil)

// NewSearchPathCheck creates a new SearchPathCheck.
func NewSearchPathCheck(det *detect.Detector) *SearchPathCheck {
	return &SearchPathCheck{det: det}
}

// Name returns the unique identifier for this check.
func (c *SearchPathCheck) Name() string {
	return "search-path"
}

// Category returns the grouping for this check.
func (c *SearchPathCheck) Category() string {
	return "cli"
}

// Run executes the check.
func (c *SearchPathCheck) Run() *CheckResult {
	reg := c.det.Registry()

	var entries []commandEntry
	var misattributed, broken []string
	for _, d := range reg.All() {
		location, ok := c.det.FindOnSearchPath(d.Command)
		if !ok {
			continue
		}
		e := commandEntry{
			Command:  d.Command,
			Location: location,
			Verified: c.det.Verify(d.Command),
			Editor:   string(d.Name),
		}
		if fam, found := reg.FamilyFromPath(location); found {
			e.Editor = string(fam)
			if fam != d.Name {
				misattributed = append(misattributed, fmt.Sprintf("%s -> %s", d.Command, fam))
			}
		}
		if !e.Verified {
			broken = append(broken, d.Command)
		}
		entries = append(entries, e)
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details: map[string]any{
			"commands": entries,
			"found":    len(entries),
		},
	}

	switch {
	case len(entries) == 0:
		result.Status = SeverityInfo
		result.Message = "no editor command on the search path"
		result.FixHint = shellCommandHint
	case len(broken) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("command(s) found but not runnable: %s", strings.Join(broken, ", "))
		result.FixHint = shellCommandHint
	case len(misattributed) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("command(s) installed by another editor: %s", strings.Join(misattributed, ", "))
		result.FixHint = shellCommandHint
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d editor command(s) on the search path", len(entries))
	}
	return result
}

// bundledEntry describes one editor's bundled CLI.
type bundledEntry struct {
	Editor   string `json:"editor"`
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Verified bool   `json:"verified"`
	// Usable is the CLI the editor resolves to, bundled first, or "".
	Usable string `json:"usable,omitempty"`
}

// BundledCLICheck checks each editor's CLI inside its application bundle.
type BundledCLICheck struct {
	det   *detect.Detector
	probe system.Probe
}

var _ Check = (*BundledCLICheck)(nil)

// NewBundledCLICheck creates a new BundledCLICheck.
func NewBundledCLICheck(det *detect.Detector, probe system.Probe) *BundledCLICheck {
	return &BundledCLICheck{det: det, probe: probe}
}

// Name returns the unique identifier for this check.
func (c *BundledCLICheck) Name() string {
	return "bundled-cli"
}

// Category returns the grouping for this check.
func (c *BundledCLICheck) Category() string {
	return "cli"
}

// Run executes the check.
func (c *BundledCLICheck) Run() *CheckResult {
	var entries []bundledEntry
	var present, broken, fallback []string
	for _, d := range c.det.Registry().All() {
		if d.BundledPath == "" {
			continue
		}
		e := bundledEntry{Editor: string(d.Name), Path: d.BundledPath}
		e.Exists = c.probe.Exists(d.BundledPath)
		if e.Exists {
			e.Verified = c.det.Verify(d.BundledPath)
			if e.Verified {
				present = append(present, string(d.Name))
			} else {
				broken = append(broken, string(d.Name))
			}
		}
		if r, ok := c.det.ResolveForEditor(d); ok {
			e.Usable = r.Command
			if !e.Verified {
				fallback = append(fallback, fmt.Sprintf("%s via %s", d.Name, r.Command))
			}
		}
		entries = append(entries, e)
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"bundled": entries},
	}

	switch {
	case len(broken) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("bundled CLI present but not runnable: %s", strings.Join(broken, ", "))
		result.FixHint = "reinstall the editor application"
	case len(present) == 0:
		result.Status = SeverityInfo
		result.Message = "no bundled editor CLI found in the default install locations"
		if len(fallback) > 0 {
			result.Message += "; usable: " + strings.Join(fallback, ", ")
		}
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("bundled CLI available for %s", strings.Join(present, ", "))
	}
	return result
}

// GenericCommandCheck detects the shared-command conflict: the terminal
// reports a generic editor while its command belongs to another editor.
type GenericCommandCheck struct {
	det   *detect.Detector
	probe system.Probe
}

var _ Check = (*GenericCommandCheck)(nil)

// NewGenericCommandCheck creates a new GenericCommandCheck.
func NewGenericCommandCheck(det *detect.Detector, probe system.Probe) *GenericCommandCheck {
	return &GenericCommandCheck{det: det, probe: probe}
}

// Name returns the unique identifier for this check.
func (c *GenericCommandCheck) Name() string {
	return "generic-command"
}

// Category returns the grouping for this check.
func (c *GenericCommandCheck) Category() string {
	return "cli"
}

// Run executes the check.
func (c *GenericCommandCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
	}

	ctx := c.det.InferContext()
	reg := c.det.Registry()
	owner, ok := reg.GenericOwner(ctx.TermProgram)
	if !ok || ctx.Unique {
		result.Message = "no shared terminal program in use"
		return result
	}

	location, found := c.det.FindOnSearchPath(owner.Command)
	result.Details = map[string]any{
		"editor":   string(owner.Name),
		"command":  owner.Command,
		"location": location,
	}
	if !found {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("%q is not on the search path", owner.Command)
		result.FixHint = strings.ReplaceAll(shellCommandHint, "<command>", owner.Command)
		return result
	}

	if fam, ok := reg.FamilyFromPath(location); ok && fam != owner.Name {
		// A working bundled CLI still lets resolution succeed.
		result.Status = SeverityError
		if owner.BundledPath != "" && c.probe.Exists(owner.BundledPath) && c.det.Verify(owner.BundledPath) {
			result.Status = SeverityWarning
		}
		result.Message = fmt.Sprintf("terminal reports %s but %q belongs to %s", owner.Name, owner.Command, fam)
		result.FixHint = fmt.Sprintf("in %s, %s", owner.Name, strings.ReplaceAll(shellCommandHint, "<command>", owner.Command))
		return result
	}

	result.Message = fmt.Sprintf("%q belongs to %s", owner.Command, owner.Name)
	return result
}
