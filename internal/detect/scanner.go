package detect

import "github.com/leeguoo/extcheck/internal/editor"

// ScanActive returns the editors whose application is running and whose
// CLI verifies, in registry declaration order. Inspection failures yield
// an empty result.
func (d *Detector) ScanActive() []editor.Resolved {
	snapshot, err := d.probe.Processes()
	if err != nil {
		d.logger.Debug("process snapshot unavailable", "error", err)
		return nil
	}

	var active []editor.Resolved
	for _, desc := range d.registry.All() {
		matched, ok := desc.MatchesProcess(snapshot)
		if !ok {
			continue
		}
		d.logger.Debug("editor process running", "editor", desc.Name, "match", matched, "strategy", desc.ScanStrategy)

		r, ok := d.resolveActive(desc)
		if !ok {
			d.logger.Debug("running editor has no working CLI", "editor", desc.Name)
			continue
		}
		r.Active = true
		active = append(active, r)
	}
	return active
}
