package editor

import (
	"os"
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/leeguoo/extcheck/internal/paths"
)

// Sentinel errors for registry construction.
var (
	// ErrDuplicateName is returned when two descriptors share a Name.
	ErrDuplicateName = errors.New("duplicate editor name")

	// ErrDuplicateCommand is returned when two descriptors share a Command.
	// Families that really share a CLI name must tell themselves apart
	// through BundledOnly and PathMarkers instead.
	ErrDuplicateCommand = errors.New("duplicate editor command")

	// ErrInvalidDescriptor is returned for a descriptor without a name or command.
	ErrInvalidDescriptor = errors.New("invalid editor descriptor")
)

// bundledPaths holds each family's bundled CLI per GOOS. Values may use
// "~" and ${VAR}; they are expanded when a registry is built.
var bundledPaths = map[Name]map[string]string{
	VSCode: {
		"darwin":  "/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code",
		"linux":   "/usr/share/code/bin/code",
		"windows": `${LOCALAPPDATA}\Programs\Microsoft VS Code\bin\code.cmd`,
	},
	Cursor: {
		"darwin":  "/Applications/Cursor.app/Contents/Resources/app/bin/code",
		"linux":   "/usr/share/cursor/resources/app/bin/cursor",
		"windows": `${LOCALAPPDATA}\Programs\cursor\resources\app\bin\cursor.cmd`,
	},
	WindSurf: {
		"darwin":  "/Applications/WindSurf.app/Contents/Resources/app/bin/code",
		"linux":   "/usr/share/windsurf/bin/windsurf",
		"windows": `${LOCALAPPDATA}\Programs\Windsurf\bin\windsurf.cmd`,
	},
}

// descriptors returns the supported families in declaration order, with
// bundled paths resolved for goos.
func descriptors(goos string, getenv func(string) string) []Descriptor {
	bundled := func(n Name) string {
		return paths.Expand(bundledPaths[n][goos], getenv)
	}

	return []Descriptor{
		{
			Name:            VSCode,
			ProcessNames:    []string{"Visual Studio Code", "Code"},
			Command:         "code",
			BundledPath:     bundled(VSCode),
			ScanStrategy:    BundledOnly,
			PathMarkers:     []string{"visual studio code", "vscode"},
			ParentMarkers:   []string{"Code", "Visual Studio Code"},
			TerminalProgram: "vscode",
		},
		{
			Name:           Cursor,
			ProcessNames:   []string{"Cursor"},
			Command:        "cursor",
			BundledPath:    bundled(Cursor),
			ScanStrategy:   CommandFirst,
			SessionEnv:     "CURSOR_TRACE_ID",
			AskpassMarkers: []string{"cursor"},
			PathMarkers:    []string{"cursor"},
			ParentMarkers:  []string{"Cursor"},
		},
		{
			Name:           WindSurf,
			ProcessNames:   []string{"WindSurf", "Windsurf"},
			Command:        "windsurf",
			BundledPath:    bundled(WindSurf),
			ScanStrategy:   CommandFirst,
			AskpassMarkers: []string{"windsurf"},
			PathMarkers:    []string{"windsurf"},
			ParentMarkers:  []string{"Windsurf", "WindSurf"},
		},
	}
}

// Registry is an ordered, immutable set of editor descriptors.
// Declaration order is the tie-break order for every detection step.
type Registry struct {
	entries []Descriptor
}

// NewRegistry validates entries and returns a registry over them.
func NewRegistry(entries ...Descriptor) (*Registry, error) {
	names := make(map[Name]struct{}, len(entries))
	commands := make(map[string]Name, len(entries))

	for _, d := range entries {
		if d.Name == "" || d.Command == "" {
			return nil, errors.Wrapf(ErrInvalidDescriptor, "name %q command %q", d.Name, d.Command)
		}
		if _, dup := names[d.Name]; dup {
			return nil, errors.Wrapf(ErrDuplicateName, "%s", d.Name)
		}
		if other, dup := commands[d.Command]; dup {
			return nil, errors.Wrapf(ErrDuplicateCommand, "%s used by %s and %s", d.Command, other, d.Name)
		}
		names[d.Name] = struct{}{}
		commands[d.Command] = d.Name
	}

	out := make([]Descriptor, len(entries))
	copy(out, entries)
	return &Registry{entries: out}, nil
}

// For returns the built-in registry with bundled paths for goos.
func For(goos string, getenv func(string) string) *Registry {
	r, err := NewRegistry(descriptors(goos, getenv)...)
	if err != nil {
		panic("editor: built-in registry is invalid: " + err.Error())
	}
	return r
}

// Default returns the built-in registry for the running OS.
func Default() *Registry {
	return For(runtime.GOOS, os.Getenv)
}

// All returns the descriptors in declaration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of families.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Get returns the descriptor for name.
func (r *Registry) Get(name Name) (Descriptor, bool) {
	for _, d := range r.entries {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// FamilyFromPath returns the first family, in declaration order, whose
// path markers occur in a resolved CLI location.
func (r *Registry) FamilyFromPath(location string) (Name, bool) {
	for _, d := range r.entries {
		if d.MatchesPath(location) {
			return d.Name, true
		}
	}
	return "", false
}

// FamilyFromParent returns the first family whose parent markers occur in
// the parent process command name.
func (r *Registry) FamilyFromParent(comm string) (Name, bool) {
	for _, d := range r.entries {
		if d.MatchesParent(comm) {
			return d.Name, true
		}
	}
	return "", false
}

// GenericOwner returns the family implied by a TERM_PROGRAM value.
func (r *Registry) GenericOwner(termProgram string) (Descriptor, bool) {
	if termProgram == "" {
		return Descriptor{}, false
	}
	for _, d := range r.entries {
		if d.TerminalProgram == termProgram {
			return d, true
		}
	}
	return Descriptor{}, false
}

// TerminalPrograms lists the TERM_PROGRAM values any family owns.
func (r *Registry) TerminalPrograms() []string {
	var out []string
	for _, d := range r.entries {
		if d.TerminalProgram != "" {
			out = append(out, d.TerminalProgram)
		}
	}
	return out
}
