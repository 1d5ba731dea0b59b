package report

import "strings"

// InstallCommand returns the shell line that installs id with command.
// The command is quoted so bundled paths with spaces survive.
func InstallCommand(command, id string) string {
	return `"` + command + `" --install-extension ` + id
}

// InstallCommands returns one install line per id, in order.
func InstallCommands(command string, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, InstallCommand(command, id))
	}
	return out
}

// BatchSeparator joins install lines so that a failed install does not
// stop the ones after it.
func BatchSeparator(goos string) string {
	if goos == "windows" {
		return " & "
	}
	return "; "
}

// BatchLine joins install lines into one line for goos.
func BatchLine(lines []string, goos string) string {
	return strings.Join(lines, BatchSeparator(goos))
}
