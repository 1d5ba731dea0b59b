// Package detect works out which editor the user is working in.
//
// Four pieces cooperate, each a method on [Detector]:
//
//   - InferContext reads the integrated-terminal environment signals.
//   - ScanActive matches the running process list against the registry.
//   - Verify, FindOnSearchPath and ResolveForEditor locate a working CLI.
//   - Resolve runs the ordered decision chain and returns one editor,
//     possibly with its active siblings, or a fatal error.
//
// All host access goes through a system.Probe. The Detector keeps no
// state between calls, so resolving the same host state twice yields the
// same result.
package detect

import (
	"log/slog"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/logging"
	"github.com/leeguoo/extcheck/internal/system"
)

// Detector resolves editors from host state.
type Detector struct {
	probe    system.Probe
	registry *editor.Registry
	logger   *slog.Logger
}

// New returns a Detector. A nil logger discards.
func New(probe system.Probe, registry *editor.Registry, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Detector{
		probe:    probe,
		registry: registry,
		logger:   logger,
	}
}

// Registry returns the registry the Detector matches against.
func (d *Detector) Registry() *editor.Registry {
	return d.registry
}
