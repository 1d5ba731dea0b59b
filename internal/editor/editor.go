// Package editor describes the editor families extcheck supports and the
// concrete, launchable editor instances detection produces.
//
// A family is described once, as data, by a [Descriptor]. Detection code
// never branches on a family name; everything family-specific (process
// names, CLI command, bundled CLI path, lookup strategy, environment and
// path markers) lives in the descriptor so a new family is a new entry.
package editor

import "strings"

// Name identifies an editor family.
type Name string

// Supported editor families, in registry declaration order.
const (
	VSCode   Name = "VSCode"
	Cursor   Name = "Cursor"
	WindSurf Name = "WindSurf"
)

// Strategy selects how a family's CLI is located when its application is
// found running.
type Strategy int

const (
	// CommandFirst tries the preferred command on the search path, then
	// the bundled CLI.
	CommandFirst Strategy = iota

	// BundledOnly goes straight to the bundled CLI. It is used by the
	// family whose generic command name other families also install.
	BundledOnly
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case CommandFirst:
		return "command-first"
	case BundledOnly:
		return "bundled-only"
	default:
		return "unknown"
	}
}

// Descriptor is the static description of one editor family.
type Descriptor struct {
	Name Name

	// ProcessNames are case-sensitive substrings that identify the running
	// application in a process listing.
	ProcessNames []string

	// Command is the CLI name looked up on the search path.
	Command string

	// BundledPath is the CLI shipped inside the application install for
	// the current OS. Empty when the OS has no known location.
	BundledPath string

	// ScanStrategy applies when the application was found running.
	ScanStrategy Strategy

	// SessionEnv is an environment variable only this family's integrated
	// terminal sets.
	SessionEnv string

	// AskpassMarkers are case-insensitive substrings of the Git askpass
	// helper path that only this family's installation contains.
	AskpassMarkers []string

	// PathMarkers are case-insensitive substrings of a resolved CLI
	// location that identify this family.
	PathMarkers []string

	// ParentMarkers are case-sensitive substrings of the parent process
	// command name that identify this family.
	ParentMarkers []string

	// TerminalProgram is the TERM_PROGRAM value that implies this family
	// when no family-specific signal is present.
	TerminalProgram string
}

// MatchesProcess reports whether any process name occurs in snapshot.
// It returns the first matching name.
func (d Descriptor) MatchesProcess(snapshot string) (string, bool) {
	for _, p := range d.ProcessNames {
		if p != "" && strings.Contains(snapshot, p) {
			return p, true
		}
	}
	return "", false
}

// MatchesAskpass reports whether the askpass helper path belongs to d.
func (d Descriptor) MatchesAskpass(path string) bool {
	return containsFold(path, d.AskpassMarkers)
}

// MatchesPath reports whether a resolved CLI location belongs to d.
func (d Descriptor) MatchesPath(path string) bool {
	return containsFold(path, d.PathMarkers)
}

// MatchesParent reports whether a parent process command belongs to d.
func (d Descriptor) MatchesParent(comm string) bool {
	for _, m := range d.ParentMarkers {
		if m != "" && strings.Contains(comm, m) {
			return true
		}
	}
	return false
}

func containsFold(s string, markers []string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, m := range markers {
		if m != "" && strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
