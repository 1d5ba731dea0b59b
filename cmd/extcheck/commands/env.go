package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leeguoo/extcheck/internal/detect"
	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/extensions"
	"github.com/leeguoo/extcheck/internal/i18n"
	"github.com/leeguoo/extcheck/internal/logging"
	"github.com/leeguoo/extcheck/internal/report"
	"github.com/leeguoo/extcheck/internal/system"
)

// newProbe and newRegistry are replaced in tests.
var (
	newProbe    = func(logger *slog.Logger) system.Probe { return system.NewOS(logger) }
	newRegistry = editor.Default
)

// session bundles what one command invocation works with.
type session struct {
	logger     *slog.Logger
	probe      system.Probe
	detector   *detect.Detector
	reconciler *extensions.Reconciler
	installer  *extensions.Installer
	tr         *i18n.Translator
	reporter   *report.Reporter
}

func newSession(cmd *cobra.Command) *session {
	logger := logging.FromContext(cmd.Context())
	probe := newProbe(logger)

	language := ""
	if cfg != nil {
		language = cfg.Language
	}
	tr := i18n.New(i18n.Resolve(language, os.Getenv))

	return &session{
		logger:     logger,
		probe:      probe,
		detector:   detect.New(probe, newRegistry(), logger),
		reconciler: extensions.NewReconciler(probe, logger),
		installer:  extensions.NewInstaller(probe, logger),
		tr:         tr,
		reporter:   report.NewReporter(cmd.OutOrStdout(), report.Format(reportFormat()), tr),
	}
}
