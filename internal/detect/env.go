package detect

import "github.com/leeguoo/extcheck/internal/editor"

// Environment variables read by InferContext.
const (
	// EnvTermProgram is set by integrated terminals; several families
	// share the same value.
	EnvTermProgram = "TERM_PROGRAM"

	// EnvGitAskpass is the Git askpass helper path; it embeds the
	// installation directory of the editor that spawned the terminal.
	EnvGitAskpass = "VSCODE_GIT_ASKPASS_MAIN"
)

// EditorContext is what the environment says about the terminal the tool
// runs in.
type EditorContext struct {
	// InEditorTerminal is true when any editor signal fired.
	InEditorTerminal bool

	// LikelyEditor is the family the signals point at, or "".
	LikelyEditor editor.Name

	// Unique is true when LikelyEditor came from a family-specific signal
	// (session identifier or askpass path) rather than TERM_PROGRAM.
	Unique bool

	// TermProgram is the raw TERM_PROGRAM value.
	TermProgram string
}

// InferContext reads the terminal signals. Session identifiers win over
// askpass markers, and both win over the generic terminal program, which
// cannot tell families apart. It never fails; absent variables simply
// produce an empty context.
func (d *Detector) InferContext() EditorContext {
	ctx := EditorContext{TermProgram: d.probe.Getenv(EnvTermProgram)}

	if name, ok := d.uniqueSignal(); ok {
		ctx.InEditorTerminal = true
		ctx.LikelyEditor = name
		ctx.Unique = true
		d.logger.Debug("family-specific terminal signal", "editor", name)
		return ctx
	}

	if owner, ok := d.registry.GenericOwner(ctx.TermProgram); ok {
		ctx.InEditorTerminal = true
		ctx.LikelyEditor = owner.Name
		d.logger.Debug("generic terminal signal", "term_program", ctx.TermProgram, "implies", owner.Name)
	}
	return ctx
}

func (d *Detector) uniqueSignal() (editor.Name, bool) {
	for _, desc := range d.registry.All() {
		if desc.SessionEnv == "" {
			continue
		}
		if v := d.probe.Getenv(desc.SessionEnv); v != "" {
			d.logger.Debug("session identifier present", "variable", desc.SessionEnv, "session", v)
			return desc.Name, true
		}
	}

	askpass := d.probe.Getenv(EnvGitAskpass)
	if askpass == "" {
		return "", false
	}
	for _, desc := range d.registry.All() {
		if desc.MatchesAskpass(askpass) {
			d.logger.Debug("askpass path identifies editor", "path", askpass, "editor", desc.Name)
			return desc.Name, true
		}
	}
	return "", false
}
