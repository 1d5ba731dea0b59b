package detect

import "github.com/leeguoo/extcheck/internal/editor"

// lookup is the order in which a family's CLI candidates are tried.
type lookup int

const (
	commandThenBundled lookup = iota
	bundledThenCommand
	bundledOnly
)

// Verify reports whether command launches: "<command> --version" must
// exit without error.
func (d *Detector) Verify(command string) bool {
	if command == "" {
		return false
	}
	_, err := d.probe.Run(command, "--version")
	if err != nil {
		d.logger.Debug("version probe failed", "command", command, "error", err)
		return false
	}
	return true
}

// FindOnSearchPath returns where name resolves on the search path.
func (d *Detector) FindOnSearchPath(name string) (string, bool) {
	location, err := d.probe.LookPath(name)
	if err != nil || location == "" {
		return "", false
	}
	return location, true
}

// ResolveForEditor finds a verified CLI for desc: the bundled CLI first,
// then the named command on the search path.
func (d *Detector) ResolveForEditor(desc editor.Descriptor) (editor.Resolved, bool) {
	return d.resolve(desc, bundledThenCommand)
}

// resolveActive follows the family's scan strategy.
func (d *Detector) resolveActive(desc editor.Descriptor) (editor.Resolved, bool) {
	if desc.ScanStrategy == editor.BundledOnly {
		return d.resolve(desc, bundledOnly)
	}
	return d.resolve(desc, commandThenBundled)
}

func (d *Detector) resolve(desc editor.Descriptor, order lookup) (editor.Resolved, bool) {
	var steps []func(editor.Descriptor) (editor.Resolved, bool)
	switch order {
	case commandThenBundled:
		steps = append(steps, d.resolveCommand, d.resolveBundled)
	case bundledThenCommand:
		steps = append(steps, d.resolveBundled, d.resolveCommand)
	case bundledOnly:
		steps = append(steps, d.resolveBundled)
	}

	for _, step := range steps {
		if r, ok := step(desc); ok {
			d.logger.Debug("resolved editor CLI", "editor", r.Name, "command", r.Command, "source", r.Source)
			return r, true
		}
	}
	return editor.Resolved{}, false
}

// resolveCommand accepts the family's search-path command unless its
// location identifies a different family.
func (d *Detector) resolveCommand(desc editor.Descriptor) (editor.Resolved, bool) {
	location, ok := d.FindOnSearchPath(desc.Command)
	if !ok {
		return editor.Resolved{}, false
	}
	if fam, found := d.registry.FamilyFromPath(location); found && fam != desc.Name {
		d.logger.Debug("search-path command belongs to another editor",
			"command", desc.Command, "location", location, "expected", desc.Name, "actual", fam)
		return editor.Resolved{}, false
	}
	if !d.Verify(desc.Command) {
		return editor.Resolved{}, false
	}
	return editor.Resolved{
		Name:     desc.Name,
		Command:  desc.Command,
		Location: location,
		Source:   editor.SourceSearchPath,
	}, true
}

func (d *Detector) resolveBundled(desc editor.Descriptor) (editor.Resolved, bool) {
	if desc.BundledPath == "" || !d.probe.Exists(desc.BundledPath) {
		return editor.Resolved{}, false
	}
	if !d.Verify(desc.BundledPath) {
		return editor.Resolved{}, false
	}
	return editor.Resolved{
		Name:    desc.Name,
		Command: desc.BundledPath,
		Source:  editor.SourceBundled,
	}, true
}
