package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leeguoo/extcheck/internal/config"
	"github.com/leeguoo/extcheck/internal/doctor"
	"github.com/leeguoo/extcheck/internal/errors"
	"github.com/leeguoo/extcheck/internal/extensions"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"install missing extensions found by the checks")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose editor detection",
	Long: `Run diagnostic checks on how extcheck detects your editor.

Reports the integrated-terminal signals, editor commands on the search
path and who installed them, bundled editor CLIs, the shared 'code'
command conflict, the parent process, the config file and the required
extensions.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

var (
	errDoctorWarnings = errors.New("warnings found")
	errDoctorErrors   = errors.New("errors found")
)

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}

	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"),
			"pick one output mode")
	}
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	s := newSession(cmd)

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(config.FileUsed(), configLoadErr))
	runner.AddCheck(doctor.NewEnvironmentCheck(s.detector, s.probe))
	runner.AddCheck(doctor.NewParentProcessCheck(s.detector, s.probe))
	runner.AddCheck(doctor.NewSearchPathCheck(s.detector))
	runner.AddCheck(doctor.NewBundledCLICheck(s.detector, s.probe))
	runner.AddCheck(doctor.NewGenericCommandCheck(s.detector, s.probe))
	runner.AddCheck(doctor.NewResolutionCheck(s.detector))
	runner.AddCheck(doctor.NewExtensionsCheck(s.detector, s.reconciler, s.installer, extensions.Required()))

	report := runner.Run()
	if doctorFix {
		report.Fixes = runner.Fix()
	}

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewReportedError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewReportedError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "encoding JSON"), "")
		}
		return nil
	}

	outputDoctorText(w, report)
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	for _, fix := range report.Fixes {
		hasOutput = true
		icon := statusIcon(doctor.SeverityPass)
		if !fix.Fixed {
			icon = statusIcon(doctor.SeverityError)
		}
		fmt.Fprintf(w, "%s [fix] %s: %s\n", icon, fix.Target, fix.Description)
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
