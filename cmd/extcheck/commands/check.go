package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/errors"
	"github.com/leeguoo/extcheck/internal/extensions"
	"github.com/leeguoo/extcheck/internal/i18n"
	"github.com/leeguoo/extcheck/internal/report"
)

func runCheck(cmd *cobra.Command, _ []string) error {
	s := newSession(cmd)

	check, err := s.check(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := s.reporter.Report(check); err != nil {
		return errors.NewSystemError(err, "")
	}
	return checkError(check)
}

// check resolves the editor and reconciles its extensions. Resolution
// failures are printed to w.
func (s *session) check(w io.Writer) (*report.Check, error) {
	resolved, err := s.detector.Resolve()
	if err != nil {
		return nil, s.resolutionError(w, err)
	}
	s.logger.Info("editor resolved",
		"editor", resolved.Name, "command", resolved.Command, "source", resolved.Source, "editors", len(resolved.Editors()))

	return &report.Check{
		Results:          s.reconciler.Reconcile(resolved.Editors(), extensions.Required()),
		InEditorTerminal: s.detector.InferContext().InEditorTerminal,
	}, nil
}

// resolutionError prints the localized message for a fatal resolution
// failure.
func (s *session) resolutionError(w io.Writer, err error) error {
	key := i18n.MsgNoEditorCLI
	if errors.Is(err, errors.ErrCLIConflict) {
		key = i18n.MsgCLIConflict
	}
	s.logger.Debug("resolution failed", "error", err)
	fmt.Fprintln(w, color.RedString("❌ %s", s.tr.T(key)))
	return errors.NewReportedError(err, errors.ExitUser)
}

// checkError maps a finished check to the command's exit status.
func checkError(c *report.Check) error {
	if c.OK() {
		return nil
	}
	for _, r := range c.Results {
		if r.Outcome == extensions.OutcomeQueryFailed {
			return errors.NewReportedError(
				errors.Wrapf(errors.ErrExtensionQuery, "%s", r.Editor.Name), errors.ExitUser)
		}
	}

	var names []editor.Resolved
	for _, r := range c.Results {
		if r.Outcome == extensions.OutcomeMissing {
			names = append(names, r.Editor)
		}
	}
	return errors.NewReportedError(
		errors.Wrapf(errors.ErrMissingExtensions, "%s", editor.Names(names)), errors.ExitUser)
}
