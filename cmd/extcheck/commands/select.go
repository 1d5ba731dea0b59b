package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/errors"
	"github.com/leeguoo/extcheck/internal/extensions"
	"github.com/leeguoo/extcheck/internal/logging"
	"github.com/leeguoo/extcheck/internal/report"
)

// pendingInstall is one extension waiting to be installed into an editor.
type pendingInstall struct {
	Editor    editor.Resolved
	Extension string
}

// pickInstalls chooses which pending installs to run. It is replaced in
// tests.
var pickInstalls = pickInstallsInteractive

func pickInstallsInteractive(cmd *cobra.Command, pending []pendingInstall) ([]pendingInstall, error) {
	if !logging.IsTTY(cmd.OutOrStdout()) {
		return nil, errors.NewUserError(
			errors.New("--select needs an interactive terminal"),
			"run without --select to install everything that is missing")
	}

	idx, err := fuzzyfinder.FindMulti(
		pending,
		func(i int) string {
			return fmt.Sprintf("%s: %s", pending[i].Editor.Name, pending[i].Extension)
		},
		fuzzyfinder.WithHeader("Tab to mark, Enter to install"),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			p := pending[i]
			return fmt.Sprintf("Editor:  %s\nCommand: %s\n\n%s",
				p.Editor.Name, p.Editor.Command, report.InstallCommand(p.Editor.Command, p.Extension))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	out := make([]pendingInstall, 0, len(idx))
	for _, i := range idx {
		out = append(out, pending[i])
	}
	return out, nil
}

// pendingInstalls lists every missing extension in result order.
func pendingInstalls(results []extensions.Result) []pendingInstall {
	var out []pendingInstall
	for _, r := range results {
		if r.Outcome != extensions.OutcomeMissing {
			continue
		}
		for _, id := range r.Missing {
			out = append(out, pendingInstall{Editor: r.Editor, Extension: id})
		}
	}
	return out
}

// selectResults narrows results to the installs the user picked.
func selectResults(cmd *cobra.Command, results []extensions.Result) ([]extensions.Result, error) {
	pending := pendingInstalls(results)
	if len(pending) == 0 {
		return results, nil
	}

	picked, err := pickInstalls(cmd, pending)
	if err != nil {
		return nil, err
	}

	type key struct {
		name editor.Name
		id   string
	}
	chosen := make(map[key]bool, len(picked))
	for _, p := range picked {
		chosen[key{p.Editor.Name, p.Extension}] = true
	}
	return extensions.Select(results, func(name editor.Name, id string) bool {
		return chosen[key{name, id}]
	}), nil
}
