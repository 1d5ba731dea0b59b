// Package commands implements the CLI commands for extcheck.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leeguoo/extcheck/cmd"
	"github.com/leeguoo/extcheck/internal/config"
	"github.com/leeguoo/extcheck/internal/errors"
	"github.com/leeguoo/extcheck/internal/i18n"
	"github.com/leeguoo/extcheck/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// formatFlag holds the value of the --format flag.
var formatFlag string

// noColor holds the value of the --no-color flag.
var noColor bool

// cfg is the loaded configuration; nil until initConfig runs.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error log output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then the user config directory)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "",
		"report format: "+strings.Join(config.Formats(), ", "))
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("extcheck version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "extcheck",
	Short: "Check that your editor has the required extensions",
	Long: `extcheck finds the editor you are working in (VSCode, Cursor or
WindSurf) and checks that the extensions the project relies on are
installed: dbaeumer.vscode-eslint and esbenp.prettier-vscode.

When run from a plain terminal it checks every editor that is currently
open. Missing extensions are listed with ready-to-run install commands.

Exit codes:
  0 - every checked editor has all required extensions
  1 - extensions missing, extension list unavailable, or no editor found`,
	Example: `  # Check the current editor
  extcheck

  # Machine-readable output
  extcheck --format json

  # Install whatever is missing
  extcheck install

  See Also: extcheck doctor`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateGlobalFlags(cmd, args)
	},
	RunE: runCheck,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}
	if !logging.ValidFormat(logFormat) {
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat), "use --log-format text or json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("EXTCHECK_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	handlers := []slog.Handler{
		logging.NewFormatHandler(cmd.ErrOrStderr(), logging.Format(logFormat), level),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// validateGlobalFlags checks config and report flags. The doctor command
// reports configuration problems itself.
func validateGlobalFlags(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil && cmd.Name() != "doctor" {
		return configError(cmd.ErrOrStderr(), configLoadErr)
	}

	if formatFlag != "" && !slices.Contains(config.Formats(), formatFlag) {
		err := errors.Newf("invalid format %q (valid: %s)", formatFlag, strings.Join(config.Formats(), ", "))
		return errors.NewUserError(err, "Run 'extcheck --help' to see valid formats")
	}

	if noColor || (cfg != nil && cfg.NoColor) {
		color.NoColor = true
	}
	return nil
}

// configError prints a localized message for a config that failed to
// load. The language comes from the locale since the config is unusable.
func configError(w io.Writer, err error) error {
	exitErr := errors.NewConfigError(err)
	tr := i18n.New(i18n.Resolve("", os.Getenv))
	fmt.Fprintln(w, color.RedString("❌ %s", tr.T(i18n.MsgInvalidConfig, err)))
	fmt.Fprintln(w, color.YellowString("%s", exitErr.Suggestion))
	return errors.NewReportedError(exitErr, exitErr.Code)
}

// reportFormat returns the --format flag, else the configured format.
func reportFormat() string {
	if formatFlag != "" {
		return formatFlag
	}
	if cfg != nil && cfg.Format != "" {
		return cfg.Format
	}
	return config.FormatText
}

// PrintError writes err for the user unless the command already did.
func PrintError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Reported {
			return
		}
		if exitErr.Err != nil {
			fmt.Fprintln(w, color.RedString("Error: %v", exitErr.Err))
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintln(w, color.YellowString("%s", exitErr.Suggestion))
		}
		return
	}
	fmt.Fprintln(w, color.RedString("Error: %v", err))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
