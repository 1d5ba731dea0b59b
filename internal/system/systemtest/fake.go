// Package systemtest provides an in-memory system.Probe for tests.
package systemtest

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/leeguoo/extcheck/internal/system"
)

// ErrNotFound is returned for commands the Fake does not know.
var ErrNotFound = errors.New("executable file not found")

// Fake is a scripted system.Probe. The zero value is an empty host: no
// environment, no processes, nothing on the search path.
type Fake struct {
	// Env maps environment variable names to values.
	Env map[string]string

	// ProcessList is returned by Processes; ProcessErr makes it fail.
	ProcessList string
	ProcessErr  error

	// Paths maps command names to the location LookPath reports.
	Paths map[string]string

	// Files lists paths that exist on disk.
	Files map[string]bool

	// Working lists commands or paths whose --version probe succeeds.
	Working map[string]bool

	// Outputs maps "name arg1 arg2" to the stdout Run returns.
	Outputs map[string]string

	// Failures maps "name arg1 arg2" to the error Run returns.
	Failures map[string]error

	// Parent is the parent process command; ParentErr makes lookup fail.
	Parent    string
	ParentErr error

	// Calls records every Run invocation as "name arg1 arg2".
	Calls []string
}

var _ system.Probe = (*Fake)(nil)

// Getenv implements system.Probe.
func (f *Fake) Getenv(key string) string {
	return f.Env[key]
}

// Processes implements system.Probe.
func (f *Fake) Processes() (string, error) {
	if f.ProcessErr != nil {
		return "", f.ProcessErr
	}
	return f.ProcessList, nil
}

// LookPath implements system.Probe.
func (f *Fake) LookPath(name string) (string, error) {
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "", errors.Wrapf(ErrNotFound, "%s", name)
}

// Exists implements system.Probe.
func (f *Fake) Exists(path string) bool {
	return f.Files[path]
}

// Run implements system.Probe.
func (f *Fake) Run(name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, key)

	if err, ok := f.Failures[key]; ok {
		return nil, err
	}
	if out, ok := f.Outputs[key]; ok {
		return []byte(out), nil
	}
	if len(args) == 1 && args[0] == "--version" && f.Working[name] {
		return []byte("1.0.0\n"), nil
	}
	return nil, errors.Wrapf(ErrNotFound, "%s", key)
}

// ParentCommand implements system.Probe.
func (f *Fake) ParentCommand() (string, error) {
	if f.ParentErr != nil {
		return "", f.ParentErr
	}
	return f.Parent, nil
}

// CallCount returns how many times Run was invoked with exactly call.
func (f *Fake) CallCount(call string) int {
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}
