// Package paths resolves the filesystem locations extcheck depends on:
// its own configuration directory and the bundled editor CLI paths
// declared in the editor registry.
//
// The configuration directory follows the XDG Base Directory
// Specification through github.com/adrg/xdg:
//
//	paths.ConfigDir() // ~/.config/extcheck on Linux
//
// Bundled CLI paths are written with "~" and ${VAR} placeholders and
// resolved with [Expand]:
//
//	paths.Expand(`${LOCALAPPDATA}\Programs\cursor\resources\app\bin\cursor.cmd`, os.Getenv)
package paths
