// Package logging provides structured logging for the extcheck CLI using slog.
//
// Logs describe how an editor was detected: which environment signals
// fired, which processes matched, which commands were probed and what
// each external call returned. They are written to stderr so the
// extension report on stdout stays copy-pasteable.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Debug("probing command", "command", "cursor")
//
// The logger is carried through command execution with [NewContext] and
// recovered with [FromContext], which falls back to a discarding logger.
//
// # Testing
//
// [ForTest] routes log output through t.Log so detection traces show up
// next to failing assertions.
package logging
