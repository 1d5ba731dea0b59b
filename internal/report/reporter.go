package report

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/extensions"
	"github.com/leeguoo/extcheck/internal/i18n"
)

// Format specifies the output format for check reports.
type Format string

const (
	// FormatText produces localized human-readable output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces machine-readable YAML output.
	FormatYAML Format = "yaml"
)

// Check is everything a reporter needs from one run.
type Check struct {
	Results []extensions.Result
	// InEditorTerminal is true when the tool runs in an editor's
	// integrated terminal.
	InEditorTerminal bool
	// Installs holds install attempts made after the check, if any.
	Installs []extensions.InstallResult
}

// OK reports whether every checked editor has all required extensions.
func (c *Check) OK() bool {
	return extensions.AllOK(c.Results)
}

// Reporter formats and writes check results.
type Reporter struct {
	out    io.Writer
	format Format
	tr     *i18n.Translator
	goos   string
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, tr *i18n.Translator) *Reporter {
	if tr == nil {
		tr = i18n.New(i18n.English)
	}
	return &Reporter{
		out:    out,
		format: format,
		tr:     tr,
		goos:   runtime.GOOS,
	}
}

// Report writes the check to the output.
func (r *Reporter) Report(c *Check) error {
	if c == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(c)
	case FormatYAML:
		return r.reportYAML(c)
	default:
		r.reportText(c)
		return nil
	}
}

func (r *Reporter) reportJSON(c *Check) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(c.document()), "encoding JSON report")
}

func (r *Reporter) reportYAML(c *Check) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(c.document()); err != nil {
		return errors.Wrap(err, "encoding YAML report")
	}
	return errors.Wrap(encoder.Close(), "closing YAML encoder")
}

func (c *Check) document() Document {
	doc := NewDocument(c.Results)
	doc.Installs = NewInstallEntries(c.Installs)
	return doc
}

func (r *Reporter) reportText(c *Check) {
	switch len(c.Results) {
	case 0:
		return
	case 1:
		r.reportSingle(c.Results[0], c.InEditorTerminal)
	default:
		r.reportMultiple(c.Results)
	}
}

func (r *Reporter) reportMultiple(results []extensions.Result) {
	eds := make([]editor.Resolved, 0, len(results))
	for _, res := range results {
		eds = append(eds, res.Editor)
	}
	r.info(r.tr.T(i18n.MsgMultipleEditorsDetected, editor.Names(eds)))

	anyMissing := false
	for _, res := range results {
		switch res.Outcome {
		case extensions.OutcomeQueryFailed:
			r.info("❌ " + r.tr.T(i18n.MsgCannotGetExtensions, res.Editor.Name))
		case extensions.OutcomeMissing:
			anyMissing = true
			r.info(r.tr.T(i18n.MsgEditorMissingExtensions, res.Editor.Name, strings.Join(res.Missing, ", ")))
		default:
			r.ok(r.tr.T(i18n.MsgAllExtensionsInstalled, res.Editor.Name))
		}
	}

	if !anyMissing {
		return
	}
	r.heading(r.tr.T(i18n.MsgInstallCommandsHeader))
	for _, res := range results {
		if res.Outcome != extensions.OutcomeMissing {
			continue
		}
		r.heading(string(res.Editor.Name) + ":")
		for _, line := range InstallCommands(res.Editor.Command, res.Missing) {
			fmt.Fprintln(r.out, line)
		}
	}
}

func (r *Reporter) reportSingle(res extensions.Result, inTerminal bool) {
	name := res.Editor.Name

	switch res.Outcome {
	case extensions.OutcomeQueryFailed:
		r.fail(r.tr.T(i18n.MsgCannotGetExtensions, name))

	case extensions.OutcomeOK:
		r.ok(r.tr.T(i18n.MsgAllExtensionsInstalled, name))
		switch {
		case res.Editor.Active:
			r.info(r.tr.T(i18n.MsgActiveEditorDetected, name))
		case !inTerminal:
			r.info(r.tr.T(i18n.MsgTerminalWarning))
			r.info(r.tr.T(i18n.MsgTerminalSuggestion))
		}

	case extensions.OutcomeMissing:
		label := string(name)
		if res.Editor.Active {
			label = r.tr.T(i18n.MsgActiveEditorPrefix, name)
		}
		r.info(r.tr.T(i18n.MsgCurrentEditor, label))
		r.info(r.tr.T(i18n.MsgMissingExtensions, strings.Join(res.Missing, ", ")))

		lines := InstallCommands(res.Editor.Command, res.Missing)
		r.heading(r.tr.T(i18n.MsgInstallCommandsCopyHint))
		for _, line := range lines {
			fmt.Fprintln(r.out, line)
		}
		r.heading(r.tr.T(i18n.MsgInstallCommandsBatch))
		fmt.Fprintln(r.out, BatchLine(lines, r.goos))
	}
}

// QueryFailures writes one line per editor whose extension list could not
// be read. It only writes in text format.
func (r *Reporter) QueryFailures(results []extensions.Result) {
	if r.format != FormatText && r.format != "" {
		return
	}
	for _, res := range results {
		if res.Outcome == extensions.OutcomeQueryFailed {
			r.fail(r.tr.T(i18n.MsgCannotGetExtensions, res.Editor.Name))
		}
	}
}

// Installing writes a progress line before an install attempt. It only
// writes in text format.
func (r *Reporter) Installing(name editor.Name, id string) {
	if r.format != FormatText && r.format != "" {
		return
	}
	r.info(r.tr.T(i18n.MsgInstalling, id, name))
}

// InstallSummary writes the outcome of each install attempt in text
// format. Machine formats carry installs inside the report document.
func (r *Reporter) InstallSummary(eds []editor.Resolved, results []extensions.InstallResult) {
	if r.format != FormatText && r.format != "" {
		return
	}
	if len(results) == 0 {
		for _, ed := range eds {
			r.ok(r.tr.T(i18n.MsgNothingToInstall, ed.Name))
		}
		return
	}
	for _, res := range results {
		if res.OK() {
			r.ok(r.tr.T(i18n.MsgInstallSucceeded, res.Extension, res.Editor))
		} else {
			r.fail(r.tr.T(i18n.MsgInstallFailed, res.Extension, res.Editor))
		}
	}
	if extensions.Failed(results) > 0 {
		r.info(r.tr.T(i18n.MsgInstallSummaryIncomplete))
	}
}

func (r *Reporter) ok(msg string) {
	fmt.Fprintln(r.out, color.GreenString("✅ %s", msg))
}

func (r *Reporter) info(msg string) {
	fmt.Fprintln(r.out, color.YellowString("ℹ️ %s", msg))
}

func (r *Reporter) fail(msg string) {
	fmt.Fprintln(r.out, color.RedString("❌ %s", msg))
}

func (r *Reporter) heading(msg string) {
	fmt.Fprintf(r.out, "\n%s\n", color.YellowString("%s", msg))
}
