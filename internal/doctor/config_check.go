package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/leeguoo/extcheck/internal/config"
)

// ConfigCheck validates the configuration file: syntax first, then the
// values themselves.
type ConfigCheck struct {
	path    string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check for the config file at path. An empty
// path means no file was found. loadErr is the error, if any, from
// loading the configuration at startup.
func NewConfigCheck(path string, loadErr error) *ConfigCheck {
	return &ConfigCheck{path: path, loadErr: loadErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config-file"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Run executes the check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Details:  make(map[string]any),
	}

	if c.path == "" {
		if c.loadErr != nil {
			return c.invalid(result)
		}
		result.Status = SeverityInfo
		result.Message = "no config file; using defaults"
		result.Details["searched"] = []string{".", config.Dir()}
		return result
	}

	fr := validateFile(c.path)
	result.Details["file"] = fr
	switch fr.Status {
	case "error":
		result.Status = SeverityError
		result.Message = fr.Message
		result.FixHint = "fix the syntax in " + c.path
		return result
	case "info":
		result.Status = SeverityInfo
		result.Message = fr.Message
		return result
	}

	if c.loadErr != nil {
		return c.invalid(result)
	}
	result.Message = fmt.Sprintf("%s is valid", c.path)
	return result
}

func (c *ConfigCheck) invalid(result *CheckResult) *CheckResult {
	result.Status = SeverityError
	result.Message = c.loadErr.Error()
	result.FixHint = fmt.Sprintf("accepted formats: %s; language: en or zh-CN", strings.Join(config.Formats(), ", "))
	return result
}

// validateFile checks if a file is syntactically valid.
func validateFile(filePath string) syntaxFileResult {
	fr := syntaxFileResult{Path: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fr.Status = "info"
			fr.Message = "file does not exist"
			return fr
		}
		if errors.Is(err, os.ErrPermission) {
			fr.Status = "error"
			fr.Message = fmt.Sprintf("permission denied: %v", err)
			return fr
		}
		fr.Status = "error"
		fr.Message = fmt.Sprintf("read error: %v", err)
		return fr
	}

	// Empty files are valid (no content to parse)
	if len(data) == 0 {
		fr.Status = "pass"
		fr.Message = "empty file"
		return fr
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return validateJSON(data, fr)
	case ".toml":
		return validateTOML(data, fr)
	default:
		return validateYAML(data, fr)
	}
}

func validateYAML(data []byte, fr syntaxFileResult) syntaxFileResult {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		fr.Status = "error"
		fr.Message = fmt.Sprintf("YAML error: %v", err)
		return fr
	}
	fr.Status = "pass"
	return fr
}

func validateJSON(data []byte, fr syntaxFileResult) syntaxFileResult {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		fr.Status = "error"
		fr.Message = formatJSONError(err, data)
		return fr
	}
	fr.Status = "pass"
	return fr
}

func validateTOML(data []byte, fr syntaxFileResult) syntaxFileResult {
	var v any
	if err := toml.Unmarshal(data, &v); err != nil {
		fr.Status = "error"
		fr.Message = formatTOMLError(err)
		return fr
	}
	fr.Status = "pass"
	return fr
}

// formatJSONError extracts position information from JSON syntax errors.
func formatJSONError(err error, data []byte) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(data, int(syntaxErr.Offset))
		return fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}
	return fmt.Sprintf("JSON error: %v", err)
}

// formatTOMLError extracts position information from TOML decode errors.
func formatTOMLError(err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
	}
	return fmt.Sprintf("TOML error: %v", err)
}

// offsetToLineCol converts a byte offset to 1-indexed line and column.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	offset = max(0, min(offset, len(data)))

	line = 1
	lineStart := 0
	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}
