package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the configuration directory under ConfigHome.
const AppName = "extcheck"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// Home returns the user's home directory, or an empty string when it
// cannot be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns <ConfigHome>/extcheck.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// Expand resolves a leading "~" against the home directory and expands
// ${VAR} references through getenv. Paths that reference an unset
// variable, or "~" without a home directory, expand to "".
func Expand(path string, getenv func(string) string) string {
	if path == "" {
		return ""
	}

	missing := false
	expanded := os.Expand(path, func(key string) string {
		v := getenv(key)
		if v == "" {
			missing = true
		}
		return v
	})
	if missing {
		return ""
	}

	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home := Home()
		if home == "" {
			return ""
		}
		expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}
	return expanded
}
