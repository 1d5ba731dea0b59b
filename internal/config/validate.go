package config

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/leeguoo/extcheck/internal/i18n"
)

// Report formats accepted by the format key.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted report formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidLanguage indicates a language the catalog cannot serve.
	ErrInvalidLanguage = errors.New("invalid language")

	// ErrInvalidFormat indicates an unknown report format.
	ErrInvalidFormat = errors.New("invalid format")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Language != "" && !i18n.Supported(cfg.Language) {
		errs = append(errs, &FieldError{Field: "language", Value: cfg.Language, Err: ErrInvalidLanguage})
	}

	if cfg.Format != "" && !slices.Contains(Formats(), cfg.Format) {
		errs = append(errs, &FieldError{Field: "format", Value: cfg.Format, Err: ErrInvalidFormat})
	}

	return errs
}

// FieldError represents an invalid value for a specific field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
