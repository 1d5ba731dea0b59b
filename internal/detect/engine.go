package detect

import (
	"github.com/leeguoo/extcheck/internal/editor"
	exterrors "github.com/leeguoo/extcheck/internal/errors"
)

// Resolve returns the editor to check. Steps, first success wins:
//
//  1. Outside an editor terminal: the running editors from ScanActive.
//     The first is primary and carries the full list as siblings.
//  2. A family-specific signal: that family's command, then its bundled
//     CLI. Nothing else is considered.
//  3. A shared TERM_PROGRAM: the owning family's bundled CLI, then its
//     command if the command does not resolve into another family's
//     install. If it does, resolution fails with ErrCLIConflict.
//  4. Every family's command found on the search path, labelled by the
//     family its location points at. The parent process picks among them;
//     otherwise the first wins.
//  5. Every family's bundled CLI in registry order.
//
// When nothing verifies it returns ErrNoEditorFound.
func (d *Detector) Resolve() (editor.Resolved, error) {
	ctx := d.InferContext()

	if !ctx.InEditorTerminal {
		if active := d.ScanActive(); len(active) > 0 {
			primary := active[0]
			primary.Siblings = active
			d.logger.Debug("using running editors", "count", len(active), "primary", primary.Name)
			return primary, nil
		}
	}

	if ctx.Unique {
		if desc, ok := d.registry.Get(ctx.LikelyEditor); ok {
			if r, ok := d.resolve(desc, commandThenBundled); ok {
				return r, nil
			}
			d.logger.Debug("terminal editor has no working CLI", "editor", desc.Name)
		}
	} else if owner, ok := d.registry.GenericOwner(ctx.TermProgram); ok {
		r, ok, err := d.resolveGeneric(owner)
		if err != nil {
			return editor.Resolved{}, err
		}
		if ok {
			return r, nil
		}
	}

	if r, ok := d.fromSearchPath(); ok {
		return r, nil
	}

	for _, desc := range d.registry.All() {
		if r, ok := d.resolveBundled(desc); ok {
			d.logger.Debug("falling back to bundled CLI", "editor", r.Name, "command", r.Command)
			return r, nil
		}
	}

	return editor.Resolved{}, exterrors.ErrNoEditorFound
}

// resolveGeneric handles a TERM_PROGRAM value shared by several families.
// An absent command is not a conflict; the caller keeps searching.
func (d *Detector) resolveGeneric(owner editor.Descriptor) (editor.Resolved, bool, error) {
	if r, ok := d.resolveBundled(owner); ok {
		return r, true, nil
	}

	location, ok := d.FindOnSearchPath(owner.Command)
	if !ok {
		d.logger.Debug("generic command not on search path", "command", owner.Command)
		return editor.Resolved{}, false, nil
	}

	if fam, found := d.registry.FamilyFromPath(location); found && fam != owner.Name {
		return editor.Resolved{}, false, exterrors.Wrapf(exterrors.ErrCLIConflict,
			"%q resolves to %s, which belongs to %s", owner.Command, location, fam)
	}

	if !d.Verify(owner.Command) {
		return editor.Resolved{}, false, nil
	}
	return editor.Resolved{
		Name:     owner.Name,
		Command:  owner.Command,
		Location: location,
		Source:   editor.SourceSearchPath,
	}, true, nil
}

// fromSearchPath collects every verified family command and lets the
// parent process choose among them.
func (d *Detector) fromSearchPath() (editor.Resolved, bool) {
	var candidates []editor.Resolved
	for _, desc := range d.registry.All() {
		location, ok := d.FindOnSearchPath(desc.Command)
		if !ok {
			continue
		}
		name := desc.Name
		if fam, found := d.registry.FamilyFromPath(location); found {
			name = fam
		}
		if !d.Verify(desc.Command) {
			continue
		}
		if name != desc.Name {
			d.logger.Debug("command relabelled by location", "command", desc.Command, "location", location, "editor", name)
		}
		candidates = append(candidates, editor.Resolved{
			Name:     name,
			Command:  desc.Command,
			Location: location,
			Source:   editor.SourceSearchPath,
		})
	}
	if len(candidates) == 0 {
		return editor.Resolved{}, false
	}

	parent, err := d.probe.ParentCommand()
	if err != nil {
		d.logger.Debug("parent process unavailable", "error", err)
	} else if fam, ok := d.registry.FamilyFromParent(parent); ok {
		for _, c := range candidates {
			if c.Name == fam {
				d.logger.Debug("parent process selects editor", "parent", parent, "editor", fam)
				return c, true
			}
		}
	}

	return candidates[0], true
}
