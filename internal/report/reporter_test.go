package report

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/extensions"
	"github.com/leeguoo/extcheck/internal/i18n"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var (
	cursor   = editor.Resolved{Name: editor.Cursor, Command: "cursor", Source: editor.SourceSearchPath, Active: true}
	windsurf = editor.Resolved{Name: editor.WindSurf, Command: "windsurf", Source: editor.SourceSearchPath, Active: true}
	vscode   = editor.Resolved{
		Name:    editor.VSCode,
		Command: "/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code",
		Source:  editor.SourceBundled,
	}
)

func render(t *testing.T, format Format, tr *i18n.Translator, c *Check, goos string) string {
	t.Helper()
	var buf bytes.Buffer
	r := NewReporter(&buf, format, tr)
	r.goos = goos
	require.NoError(t, r.Report(c))
	return buf.String()
}

func english() *i18n.Translator { return i18n.New(i18n.English) }

func TestInstallCommand(t *testing.T) {
	assert.Equal(t, `"cursor" --install-extension a.x`, InstallCommand("cursor", "a.x"))
	assert.Equal(t,
		`"/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code" --install-extension a.x`,
		InstallCommand(vscode.Command, "a.x"))
}

func TestBatchLine(t *testing.T) {
	lines := InstallCommands("code", []string{"a.x", "b.y"})
	assert.Equal(t, `"code" --install-extension a.x; "code" --install-extension b.y`, BatchLine(lines, "darwin"))
	assert.Equal(t, `"code" --install-extension a.x & "code" --install-extension b.y`, BatchLine(lines, "windows"))

	one := InstallCommands("code", []string{"b.y"})
	assert.Equal(t, one[0], BatchLine(one, "linux"))
}

func TestReportText_SingleMissing(t *testing.T) {
	c := &Check{Results: []extensions.Result{
		{Editor: cursor, Outcome: extensions.OutcomeMissing, Missing: []string{"b.y"}},
	}}

	out := render(t, FormatText, english(), c, "linux")
	assert.Contains(t, out, "Current editor: Active Cursor")
	assert.Contains(t, out, "Missing extensions: b.y")
	assert.Contains(t, out, "💡 Installation commands (copy and run):")
	assert.NotContains(t, out, "Installation commands:")
	assert.Contains(t, out, "Or install all at once:")
	// one-by-one line and the batch line are identical for one extension
	assert.Equal(t, 2, strings.Count(out, `"cursor" --install-extension b.y`))
}

func TestReportText_SingleOK(t *testing.T) {
	t.Run("active editor", func(t *testing.T) {
		c := &Check{Results: []extensions.Result{{Editor: cursor, Outcome: extensions.OutcomeOK}}}
		out := render(t, FormatText, english(), c, "linux")
		assert.Contains(t, out, "All required extensions are installed in Cursor")
		assert.Contains(t, out, "Detected Cursor is running")
		assert.NotContains(t, out, "regular terminal")
	})

	t.Run("plain terminal", func(t *testing.T) {
		c := &Check{Results: []extensions.Result{{Editor: vscode, Outcome: extensions.OutcomeOK}}}
		out := render(t, FormatText, english(), c, "linux")
		assert.Contains(t, out, "regular terminal")
		assert.Contains(t, out, "integrated terminal")
	})

	t.Run("editor terminal", func(t *testing.T) {
		c := &Check{
			Results:          []extensions.Result{{Editor: vscode, Outcome: extensions.OutcomeOK}},
			InEditorTerminal: true,
		}
		out := render(t, FormatText, english(), c, "linux")
		assert.Equal(t, "✅ All required extensions are installed in VSCode\n", out)
	})
}

func TestReportText_SingleQueryFailed(t *testing.T) {
	c := &Check{Results: []extensions.Result{{Editor: cursor, Outcome: extensions.OutcomeQueryFailed, Reason: "boom"}}}
	out := render(t, FormatText, english(), c, "linux")
	assert.Contains(t, out, "❌ Cannot get extension list for Cursor")
	assert.NotContains(t, out, "boom")
}

func TestReportText_Multiple(t *testing.T) {
	c := &Check{Results: []extensions.Result{
		{Editor: cursor, Outcome: extensions.OutcomeQueryFailed, Reason: "boom"},
		{Editor: windsurf, Outcome: extensions.OutcomeMissing, Missing: []string{"a.x", "b.y"}},
		{Editor: vscode, Outcome: extensions.OutcomeOK},
	}}

	out := render(t, FormatText, english(), c, "linux")
	assert.Contains(t, out, "Detected multiple editors running: Cursor, WindSurf, VSCode")
	assert.Contains(t, out, "Cannot get extension list for Cursor")
	assert.Contains(t, out, "WindSurf missing extensions: a.x, b.y")
	assert.Contains(t, out, "All required extensions are installed in VSCode")
	assert.Contains(t, out, "\nWindSurf:\n")
	assert.Contains(t, out, `"windsurf" --install-extension a.x`+"\n"+`"windsurf" --install-extension b.y`)
	assert.NotContains(t, out, "Or install all at once")
	assert.Contains(t, out, "Installation commands:")
}

func TestReportText_Chinese(t *testing.T) {
	c := &Check{Results: []extensions.Result{
		{Editor: cursor, Outcome: extensions.OutcomeMissing, Missing: []string{"b.y"}},
	}}
	out := render(t, FormatText, i18n.New(i18n.Chinese), c, "linux")
	assert.Contains(t, out, "缺少插件：b.y")
	assert.Contains(t, out, "或者一次性安装：")
}

func TestReportJSON(t *testing.T) {
	c := &Check{Results: []extensions.Result{
		{Editor: cursor, Outcome: extensions.OutcomeMissing, Missing: []string{"a.x", "b.y"}},
		{Editor: windsurf, Outcome: extensions.OutcomeQueryFailed, Reason: "exit status 1"},
	}}

	out := render(t, FormatJSON, english(), c, "linux")

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.False(t, doc.OK)
	assert.Equal(t, []editor.Name{editor.Cursor, editor.WindSurf}, doc.Editors)
	require.Len(t, doc.Results, 2)
	assert.Equal(t, []string{
		`"cursor" --install-extension a.x`,
		`"cursor" --install-extension b.y`,
	}, doc.Results[0].InstallCommands)
	assert.Equal(t, extensions.OutcomeQueryFailed, doc.Results[1].Outcome)
	assert.Equal(t, "exit status 1", doc.Results[1].Reason)
	assert.Nil(t, doc.Installs)
}

func TestReportYAML(t *testing.T) {
	c := &Check{
		Results: []extensions.Result{{Editor: cursor, Outcome: extensions.OutcomeMissing, Missing: []string{"a.x"}}},
		Installs: []extensions.InstallResult{
			{Editor: editor.Cursor, Extension: "a.x", Err: errors.New("offline")},
		},
	}

	out := render(t, FormatYAML, english(), c, "linux")

	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Installs, 1)
	assert.False(t, doc.Installs[0].OK)
	assert.Equal(t, "offline", doc.Installs[0].Error)
}

func TestReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText, nil).Report(nil))
	assert.Empty(t, buf.String())
}

func TestQueryFailures(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, FormatText, nil).QueryFailures([]extensions.Result{
		{Editor: cursor, Outcome: extensions.OutcomeQueryFailed},
		{Editor: windsurf, Outcome: extensions.OutcomeOK},
	})
	assert.Equal(t, "❌ Cannot get extension list for Cursor. Please ensure CLI is available.\n", buf.String())
}

func TestInstallSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText, nil)

	r.Installing(editor.Cursor, "a.x")
	r.InstallSummary(nil, []extensions.InstallResult{
		{Editor: editor.Cursor, Extension: "a.x"},
		{Editor: editor.Cursor, Extension: "b.y", Err: errors.New("offline")},
	})

	out := buf.String()
	assert.Contains(t, out, "Installing a.x into Cursor")
	assert.Contains(t, out, "✅ Installed a.x into Cursor")
	assert.Contains(t, out, "❌ Failed to install b.y into Cursor")
	assert.Contains(t, out, "could not be installed")

	buf.Reset()
	r.InstallSummary([]editor.Resolved{cursor}, nil)
	assert.Contains(t, buf.String(), "Nothing to install for Cursor")

	buf.Reset()
	quiet := NewReporter(&buf, FormatJSON, nil)
	quiet.Installing(editor.Cursor, "a.x")
	quiet.InstallSummary(nil, []extensions.InstallResult{{Editor: editor.Cursor, Extension: "a.x"}})
	assert.Empty(t, buf.String())
}
