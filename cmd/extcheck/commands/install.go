package commands

import (
	"github.com/spf13/cobra"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/errors"
	"github.com/leeguoo/extcheck/internal/extensions"
	"github.com/leeguoo/extcheck/internal/report"
)

var installSelect bool

func init() {
	installCmd.Flags().BoolVarP(&installSelect, "select", "s", false,
		"pick the extensions to install interactively")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install missing required extensions",
	Long: `Resolve the editor the same way the check does, then install each
missing extension with "<cli> --install-extension <id>".

Installs run one at a time. A failed install is reported and does not
stop the ones after it. With --select, a fuzzy finder lets you mark
which of the missing extensions to install.

Exit codes:
  0 - nothing missing, or everything installed
  1 - an install failed, an extension list was unavailable, or no editor found`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, _ []string) error {
	s := newSession(cmd)

	check, err := s.check(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	s.reporter.QueryFailures(check.Results)

	targets := check.Results
	if installSelect {
		if targets, err = selectResults(cmd, check.Results); err != nil {
			return err
		}
	}

	check.Installs = s.installer.InstallMissing(targets, func(ed editor.Resolved, id string) {
		s.reporter.Installing(ed.Name, id)
	})

	if reportFormat() == string(report.FormatText) {
		var eds []editor.Resolved
		for _, r := range targets {
			if r.Outcome == extensions.OutcomeOK {
				eds = append(eds, r.Editor)
			}
		}
		s.reporter.InstallSummary(eds, check.Installs)
	} else if err := s.reporter.Report(check); err != nil {
		return errors.NewSystemError(err, "")
	}

	return installError(check)
}

// installError maps install results to the command's exit status.
func installError(c *report.Check) error {
	if n := extensions.Failed(c.Installs); n > 0 {
		return errors.NewReportedError(errors.Wrapf(errors.ErrInstallFailed, "%d install(s) failed", n), errors.ExitUser)
	}
	for _, r := range c.Results {
		if r.Outcome == extensions.OutcomeQueryFailed {
			return errors.NewReportedError(
				errors.Wrapf(errors.ErrExtensionQuery, "%s", r.Editor.Name), errors.ExitUser)
		}
	}
	return nil
}
