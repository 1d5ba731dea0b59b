package commands

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/errors"
	"github.com/leeguoo/extcheck/internal/system"
	"github.com/leeguoo/extcheck/internal/system/systemtest"
)

const bothInstalled = "dbaeumer.vscode-eslint\nesbenp.prettier-vscode\n"

// resetGlobals restores every flag variable; cobra keeps them between
// Execute calls.
func resetGlobals() {
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""
	configFile = ""
	formatFlag = ""
	noColor = false
	cfg = nil
	configLoadErr = nil
	doctorJSON = false
	doctorQuiet = false
	doctorVerbose = false
	doctorFix = false
	installSelect = false
}

// execute runs the root command against fake and returns stdout, stderr
// and the command error.
func execute(t *testing.T, fake *systemtest.Fake, args ...string) (string, string, error) {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Setenv("LANG", "en_US.UTF-8")
	t.Setenv("EXTCHECK_LANGUAGE", "")
	t.Setenv("EXTCHECK_FORMAT", "")

	origProbe, origRegistry, origNoColor := newProbe, newRegistry, color.NoColor
	t.Cleanup(func() {
		newProbe, newRegistry, color.NoColor = origProbe, origRegistry, origNoColor
		resetGlobals()
		viper.Reset()
	})

	resetGlobals()
	viper.Reset()
	color.NoColor = true
	newProbe = func(*slog.Logger) system.Probe { return fake }
	newRegistry = func() *editor.Registry {
		return editor.For("darwin", func(string) string { return "" })
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// stubPicker replaces the interactive picker for the rest of the test.
func stubPicker(t *testing.T, fn func(*cobra.Command, []pendingInstall) ([]pendingInstall, error)) {
	t.Helper()
	t.Cleanup(func() { pickInstalls = pickInstallsInteractive })
	pickInstalls = fn
}

func funcPointer(f any) uintptr {
	return reflect.ValueOf(f).Pointer()
}

// cursorTerminal is a Cursor integrated terminal with the cursor command
// on the search path.
func cursorTerminal(listing string) *systemtest.Fake {
	return &systemtest.Fake{
		Env:     map[string]string{"CURSOR_TRACE_ID": "abcd1234"},
		Paths:   map[string]string{"cursor": "/usr/local/bin/cursor"},
		Working: map[string]bool{"cursor": true},
		Outputs: map[string]string{"cursor --list-extensions": listing},
	}
}

func TestCheck_AllInstalled(t *testing.T) {
	stdout, _, err := execute(t, cursorTerminal(bothInstalled))
	require.NoError(t, err)

	assert.Contains(t, stdout, "All required extensions are installed in Cursor")
	assert.NotContains(t, stdout, "regular terminal")
}

func TestCheck_MissingExtension(t *testing.T) {
	stdout, _, err := execute(t, cursorTerminal("dbaeumer.vscode-eslint\n"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))
	assert.True(t, errors.Is(err, errors.ErrMissingExtensions))

	assert.Contains(t, stdout, "Current editor: Cursor")
	assert.Contains(t, stdout, "Missing extensions: esbenp.prettier-vscode")
	assert.Contains(t, stdout, `"cursor" --install-extension esbenp.prettier-vscode`)
}

func TestCheck_RegularTerminalWarning(t *testing.T) {
	fake := &systemtest.Fake{
		Paths:   map[string]string{"cursor": "/usr/local/bin/cursor"},
		Working: map[string]bool{"cursor": true},
		Outputs: map[string]string{"cursor --list-extensions": bothInstalled},
	}

	stdout, _, err := execute(t, fake)
	require.NoError(t, err)
	assert.Contains(t, stdout, "regular terminal")
}

func TestCheck_RunningEditors(t *testing.T) {
	fake := &systemtest.Fake{
		ProcessList: "me 1 Cursor\nme 2 Windsurf\n",
		Paths: map[string]string{
			"cursor":   "/usr/local/bin/cursor",
			"windsurf": "/usr/local/bin/windsurf",
		},
		Working: map[string]bool{"cursor": true, "windsurf": true},
		Outputs: map[string]string{
			"cursor --list-extensions":   bothInstalled,
			"windsurf --list-extensions": "esbenp.prettier-vscode\n",
		},
	}

	stdout, _, err := execute(t, fake)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))

	assert.Contains(t, stdout, "Detected multiple editors running: Cursor, WindSurf")
	assert.Contains(t, stdout, "All required extensions are installed in Cursor")
	assert.Contains(t, stdout, "WindSurf missing extensions: dbaeumer.vscode-eslint")
	assert.Contains(t, stdout, `"windsurf" --install-extension dbaeumer.vscode-eslint`)
}

func TestCheck_QueryFailure(t *testing.T) {
	fake := cursorTerminal("")
	fake.Outputs = nil
	fake.Failures = map[string]error{"cursor --list-extensions": errors.New("exit status 1")}

	stdout, _, err := execute(t, fake)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExtensionQuery))
	assert.Equal(t, errors.ExitUser, errors.Code(err))
	assert.Contains(t, stdout, "Cannot get extension list for Cursor")
}

func TestCheck_NoEditor(t *testing.T) {
	stdout, stderr, err := execute(t, &systemtest.Fake{})
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No available editor CLI detected")

	// already printed by the command
	var buf bytes.Buffer
	PrintError(&buf, err)
	assert.Empty(t, buf.String())
}

func TestCheck_CLIConflict(t *testing.T) {
	fake := &systemtest.Fake{
		Env:     map[string]string{"TERM_PROGRAM": "vscode"},
		Paths:   map[string]string{"code": "/Applications/Cursor.app/Contents/Resources/app/bin/code"},
		Working: map[string]bool{"code": true},
	}

	_, stderr, err := execute(t, fake)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCLIConflict))
	assert.Contains(t, stderr, "system code command points to other editor")
}

func TestCheck_JSONFormat(t *testing.T) {
	stdout, _, err := execute(t, cursorTerminal("dbaeumer.vscode-eslint\n"), "--format", "json")
	require.Error(t, err)

	var doc struct {
		OK      bool `json:"ok"`
		Results []struct {
			Editor  string   `json:"editor"`
			Outcome string   `json:"outcome"`
			Missing []string `json:"missing"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)
	assert.False(t, doc.OK)
	require.Len(t, doc.Results, 1)
	assert.Equal(t, "Cursor", doc.Results[0].Editor)
	assert.Equal(t, []string{"esbenp.prettier-vscode"}, doc.Results[0].Missing)
}

func TestCheck_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, cursorTerminal(bothInstalled), "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCheck_RejectsArguments(t *testing.T) {
	_, _, err := execute(t, cursorTerminal(bothInstalled), "extra")
	require.Error(t, err)
}

func TestCheck_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o600))

	stdout, stderr, err := execute(t, cursorTerminal(bothInstalled), "--config", path)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Invalid configuration: ")
	assert.Contains(t, stderr, "Run: extcheck doctor")

	var buf bytes.Buffer
	PrintError(&buf, err)
	assert.Empty(t, buf.String())
}

func TestDoctor_ReportsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o600))

	stdout, stderr, err := execute(t, cursorTerminal(bothInstalled), "doctor", "--config", path)
	require.Error(t, err)
	assert.NotContains(t, stderr, "Invalid configuration: ")
	assert.Contains(t, stdout, "config-file")
}

func TestInstall_InstallsMissing(t *testing.T) {
	fake := cursorTerminal("dbaeumer.vscode-eslint\n")
	fake.Outputs["cursor --install-extension esbenp.prettier-vscode"] = "done\n"

	stdout, _, err := execute(t, fake, "install")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.CallCount("cursor --install-extension esbenp.prettier-vscode"))
	assert.Zero(t, fake.CallCount("cursor --install-extension dbaeumer.vscode-eslint"))
	assert.Contains(t, stdout, "Installing esbenp.prettier-vscode into Cursor")
	assert.Contains(t, stdout, "Installed esbenp.prettier-vscode into Cursor")
}

func TestInstall_NothingMissing(t *testing.T) {
	fake := cursorTerminal(bothInstalled)

	stdout, _, err := execute(t, fake, "install")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Nothing to install for Cursor")
	for _, c := range fake.Calls {
		assert.NotContains(t, c, "--install-extension")
	}
}

func TestInstall_FailureContinues(t *testing.T) {
	fake := cursorTerminal("")
	fake.Failures = map[string]error{
		"cursor --install-extension dbaeumer.vscode-eslint": errors.New("network down"),
	}
	fake.Outputs["cursor --install-extension esbenp.prettier-vscode"] = ""

	stdout, _, err := execute(t, fake, "install")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInstallFailed))
	assert.Equal(t, errors.ExitUser, errors.Code(err))

	assert.Equal(t, 1, fake.CallCount("cursor --install-extension esbenp.prettier-vscode"))
	assert.Contains(t, stdout, "Failed to install dbaeumer.vscode-eslint into Cursor")
	assert.Contains(t, stdout, "Installed esbenp.prettier-vscode into Cursor")
}

func TestInstall_Select(t *testing.T) {
	fake := cursorTerminal("")
	fake.Outputs["cursor --install-extension esbenp.prettier-vscode"] = ""

	var offered []string
	stubPicker(t, func(_ *cobra.Command, pending []pendingInstall) ([]pendingInstall, error) {
		for _, p := range pending {
			offered = append(offered, string(p.Editor.Name)+"/"+p.Extension)
		}
		return pending[1:], nil
	})

	stdout, _, err := execute(t, fake, "install", "--select")
	require.NoError(t, err)

	assert.Equal(t, []string{"Cursor/dbaeumer.vscode-eslint", "Cursor/esbenp.prettier-vscode"}, offered)
	assert.Zero(t, fake.CallCount("cursor --install-extension dbaeumer.vscode-eslint"))
	assert.Equal(t, 1, fake.CallCount("cursor --install-extension esbenp.prettier-vscode"))
	assert.Contains(t, stdout, "Installed esbenp.prettier-vscode into Cursor")
}

func TestInstall_SelectNothing(t *testing.T) {
	fake := cursorTerminal("")
	stubPicker(t, func(*cobra.Command, []pendingInstall) ([]pendingInstall, error) {
		return nil, nil
	})

	stdout, _, err := execute(t, fake, "install", "-s")
	require.NoError(t, err)
	for _, c := range fake.Calls {
		assert.NotContains(t, c, "--install-extension")
	}
	assert.Contains(t, stdout, "Nothing to install for Cursor")
}

func TestInstall_SelectNeedsTerminal(t *testing.T) {
	_, _, err := execute(t, cursorTerminal(""), "install", "--select")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestInstall_SelectStubIsRestored(t *testing.T) {
	t.Run("stubbed", func(t *testing.T) {
		stubPicker(t, func(*cobra.Command, []pendingInstall) ([]pendingInstall, error) {
			return nil, nil
		})
		_, _, err := execute(t, cursorTerminal(""), "install", "--select")
		require.NoError(t, err)
	})

	assert.Equal(t, funcPointer(pickInstallsInteractive), funcPointer(pickInstalls))

	_, _, err := execute(t, cursorTerminal(""), "install", "--select")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestDoctor_Healthy(t *testing.T) {
	stdout, _, err := execute(t, cursorTerminal(bothInstalled), "doctor", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stdout, "[editor] editor-resolution")
	assert.Contains(t, stdout, "[extensions] required-extensions: all required extensions installed")
	assert.Contains(t, stdout, "Summary:")
}

func TestDoctor_MissingIsWarning(t *testing.T) {
	stdout, _, err := execute(t, cursorTerminal("dbaeumer.vscode-eslint\n"), "doctor")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDoctorWarnings))
	assert.Equal(t, errors.ExitUser, errors.Code(err))
	assert.Contains(t, stdout, "missing extensions: Cursor (esbenp.prettier-vscode)")
}

func TestDoctor_Fix(t *testing.T) {
	fake := cursorTerminal("dbaeumer.vscode-eslint\n")
	fake.Outputs["cursor --install-extension esbenp.prettier-vscode"] = ""

	stdout, _, err := execute(t, fake, "doctor", "--fix")
	require.Error(t, err)
	assert.Equal(t, 1, fake.CallCount("cursor --install-extension esbenp.prettier-vscode"))
	assert.Contains(t, stdout, "[fix]")
}

func TestDoctor_JSON(t *testing.T) {
	stdout, _, err := execute(t, cursorTerminal(bothInstalled), "doctor", "--json")
	require.NoError(t, err)

	var report struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
		Summary struct {
			Errors int `json:"errors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report), stdout)
	assert.Len(t, report.Results, 8)
	assert.Zero(t, report.Summary.Errors)
}

func TestDoctor_QuietPrintsNothing(t *testing.T) {
	stdout, _, err := execute(t, cursorTerminal(bothInstalled), "doctor", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestDoctor_ExclusiveFlags(t *testing.T) {
	_, _, err := execute(t, cursorTerminal(bothInstalled), "doctor", "--json", "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, &systemtest.Fake{}, "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "extcheck version ")
	assert.Contains(t, stdout, "commit:")
	assert.Contains(t, stdout, "built:")
}

func TestPrintError(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintError(&buf, errors.NewUserError(errors.New("bad input"), "try again"))
	assert.Equal(t, "Error: bad input\ntry again\n", buf.String())

	buf.Reset()
	PrintError(&buf, errors.New("plain"))
	assert.Equal(t, "Error: plain\n", buf.String())
}
