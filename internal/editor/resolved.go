package editor

import "strings"

// Source records how a Resolved command was found.
type Source string

const (
	// SourceSearchPath means Command is a name found on the search path.
	SourceSearchPath Source = "search-path"

	// SourceBundled means Command is the absolute path of a bundled CLI.
	SourceBundled Source = "bundled"
)

// Resolved is one concrete, launchable editor instance. Command has been
// verified with a version probe before a Resolved is handed out.
type Resolved struct {
	Name Name `json:"name" yaml:"name"`

	// Command is what gets invoked: a search-path name or an absolute path.
	Command string `json:"command" yaml:"command"`

	// Location is where the search path resolved Command, if it did.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	Source Source `json:"source" yaml:"source"`

	// Active is set when the editor was found in the running process list.
	Active bool `json:"active" yaml:"active"`

	// Siblings is the full set of active editors, this one included, when
	// resolution came from the process scan.
	Siblings []Resolved `json:"siblings,omitempty" yaml:"siblings,omitempty"`
}

// Editors returns the editors a run should check: the sibling set when
// present, otherwise just r.
func (r Resolved) Editors() []Resolved {
	if len(r.Siblings) > 0 {
		out := make([]Resolved, len(r.Siblings))
		copy(out, r.Siblings)
		return out
	}
	single := r
	single.Siblings = nil
	return []Resolved{single}
}

// Multiple reports whether more than one editor is active at once.
func (r Resolved) Multiple() bool {
	return len(r.Siblings) > 1
}

// Names joins the names of editors with ", ".
func Names(editors []Resolved) string {
	names := make([]string, len(editors))
	for i, e := range editors {
		names[i] = string(e.Name)
	}
	return strings.Join(names, ", ")
}
