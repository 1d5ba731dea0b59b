// Package system is the boundary between editor detection and the host:
// environment variables, the running process list, search-path lookup,
// command execution and file existence. Detection code only sees the
// [Probe] interface, so tests drive it with synthetic host state.
package system

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/leeguoo/extcheck/internal/logging"
)

// Probe exposes the host state editor detection reads. Every method is a
// single blocking call with no retries.
type Probe interface {
	// Getenv returns the value of an environment variable, or "".
	Getenv(key string) string

	// Processes returns a textual snapshot of all running processes.
	Processes() (string, error)

	// LookPath resolves name on the search path and returns the real
	// location of the binary (symlinks followed when possible).
	LookPath(name string) (string, error)

	// Exists reports whether path exists on disk.
	Exists(path string) bool

	// Run executes name with args and returns its standard output. A
	// non-zero exit or a missing binary is an error.
	Run(name string, args ...string) ([]byte, error)

	// ParentCommand returns the command name of this process's parent.
	ParentCommand() (string, error)
}

// maxErrOutput bounds how much stderr is attached to a failed Run error.
const maxErrOutput = 512

// OS is the Probe backed by the real operating system.
type OS struct {
	logger *slog.Logger
	goos   string
}

var _ Probe = (*OS)(nil)

// NewOS returns a Probe over the running host. A nil logger discards.
func NewOS(logger *slog.Logger) *OS {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &OS{logger: logger, goos: runtime.GOOS}
}

// Getenv implements Probe.
func (o *OS) Getenv(key string) string {
	return os.Getenv(key)
}

// Processes implements Probe using ps on Unix and tasklist on Windows.
func (o *OS) Processes() (string, error) {
	var out []byte
	var err error
	if o.goos == "windows" {
		out, err = o.Run("tasklist", "/FO", "CSV", "/NH")
	} else {
		out, err = o.Run("ps", "aux")
	}
	if err != nil {
		return "", errors.Wrap(err, "listing processes")
	}
	return string(out), nil
}

// LookPath implements Probe.
func (o *OS) LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		o.logger.Debug("command not on search path", "command", name)
		return "", errors.Wrapf(err, "looking up %s", name)
	}
	if real, err := filepath.EvalSymlinks(p); err == nil {
		p = real
	}
	o.logger.Debug("command on search path", "command", name, "location", p)
	return p, nil
}

// Exists implements Probe.
func (o *OS) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Run implements Probe.
func (o *OS) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	o.logger.Debug("ran command", "command", name, "args", strings.Join(args, " "), "ok", err == nil)
	o.logger.Log(context.Background(), logging.LevelTrace, "command output",
		"command", name, "stdout", stdout.String(), "stderr", stderr.String())

	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxErrOutput {
			msg = msg[:maxErrOutput]
		}
		if msg != "" {
			return stdout.Bytes(), errors.Wrapf(err, "running %s: %s", name, msg)
		}
		return stdout.Bytes(), errors.Wrapf(err, "running %s", name)
	}
	return stdout.Bytes(), nil
}

// ParentCommand implements Probe.
func (o *OS) ParentCommand() (string, error) {
	ppid := os.Getppid()
	if ppid <= 0 {
		return "", errors.New("no parent process")
	}
	pid := strconv.Itoa(ppid)

	if o.goos == "windows" {
		out, err := o.Run("tasklist", "/FI", "PID eq "+pid, "/FO", "CSV", "/NH")
		if err != nil {
			return "", errors.Wrap(err, "reading parent process")
		}
		return firstCSVField(string(out)), nil
	}

	out, err := o.Run("ps", "-p", pid, "-o", "comm=")
	if err != nil {
		return "", errors.Wrap(err, "reading parent process")
	}
	return strings.TrimSpace(string(out)), nil
}

// firstCSVField returns the unquoted first field of tasklist CSV output.
func firstCSVField(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	field, _, _ := strings.Cut(line, ",")
	return strings.Trim(strings.TrimSpace(field), `"`)
}
