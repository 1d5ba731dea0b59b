package doctor

import (
	"fmt"

	"github.com/leeguoo/extcheck/internal/detect"
	"github.com/leeguoo/extcheck/internal/system"
)

// EnvironmentCheck reports which integrated-terminal signals are present.
type EnvironmentCheck struct {
	det   *detect.Detector
	probe system.Probe
}

var _ Check = (*EnvironmentCheck)(nil)

// NewEnvironmentCheck creates a new EnvironmentCheck.
func NewEnvironmentCheck(det *detect.Detector, probe system.Probe) *EnvironmentCheck {
	return &EnvironmentCheck{det: det, probe: probe}
}

// Name returns the unique identifier for this check.
func (c *EnvironmentCheck) Name() string {
	return "terminal-signals"
}

// Category returns the grouping for this check.
func (c *EnvironmentCheck) Category() string {
	return "environment"
}

// Run executes the check.
func (c *EnvironmentCheck) Run() *CheckResult {
	ctx := c.det.InferContext()

	keys := []string{detect.EnvTermProgram, detect.EnvGitAskpass}
	for _, d := range c.det.Registry().All() {
		if d.SessionEnv != "" {
			keys = append(keys, d.SessionEnv)
		}
	}
	env := make(map[string]string)
	for _, k := range keys {
		if v := c.probe.Getenv(k); v != "" {
			env[k] = v
		}
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details: map[string]any{
			"in_editor_terminal": ctx.InEditorTerminal,
			"likely_editor":      string(ctx.LikelyEditor),
			"unique":             ctx.Unique,
			"env":                MaskEnv(env),
		},
	}

	switch {
	case !ctx.InEditorTerminal:
		result.Status = SeverityInfo
		result.Message = "not running in an editor terminal; running editors are detected from the process list"
	case ctx.Unique:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("running in a %s terminal", ctx.LikelyEditor)
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%s=%s points at %s; other editors report the same value",
			detect.EnvTermProgram, ctx.TermProgram, ctx.LikelyEditor)
	}
	return result
}

// ParentProcessCheck reports which editor, if any, started the shell.
type ParentProcessCheck struct {
	det   *detect.Detector
	probe system.Probe
}

var _ Check = (*ParentProcessCheck)(nil)

// NewParentProcessCheck creates a new ParentProcessCheck.
func NewParentProcessCheck(det *detect.Detector, probe system.Probe) *ParentProcessCheck {
	return &ParentProcessCheck{det: det, probe: probe}
}

// Name returns the unique identifier for this check.
func (c *ParentProcessCheck) Name() string {
	return "parent-process"
}

// Category returns the grouping for this check.
func (c *ParentProcessCheck) Category() string {
	return "environment"
}

// Run executes the check.
func (c *ParentProcessCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
	}

	parent, err := c.probe.ParentCommand()
	if err != nil {
		result.Message = "parent process could not be inspected"
		result.Details = map[string]any{"error": err.Error()}
		return result
	}
	result.Details = map[string]any{"command": parent}

	name, ok := c.det.Registry().FamilyFromParent(parent)
	if !ok {
		result.Message = fmt.Sprintf("parent process %q is not an editor", parent)
		return result
	}
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("parent process %q belongs to %s", parent, name)
	result.Details["editor"] = string(name)
	return result
}
