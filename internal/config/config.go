// Package config provides configuration management for extcheck using Viper.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/leeguoo/extcheck/internal/paths"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// EXTCHECK_LANGUAGE=zh-CN.
const EnvPrefix = "EXTCHECK"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// Language forces the message language ("en", "zh-CN"). Empty means
	// detect from LANG, LANGUAGE and LC_ALL.
	Language string `mapstructure:"language" yaml:"language"`

	// Format selects the report format: text, json or yaml.
	Format string `mapstructure:"format" yaml:"format"`

	// NoColor disables colored report output.
	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// The file is named config with any extension Viper reads; config.yaml
// is the documented one, config.toml and config.json also work.
func Init() {
	viper.SetConfigName("config")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(Dir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("language", "")
	viper.SetDefault("format", FormatText)
	viper.SetDefault("no_color", false)
}

// Dir returns the per-user configuration directory.
func Dir() string {
	return paths.ConfigDir()
}

// FileUsed returns the config file the last Load read, or "".
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// Load reads and validates the configuration.
// If path is provided, it reads from that specific file and a missing
// file is an error. If path is empty, the default locations are searched
// and a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load falls back to defaults
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}
