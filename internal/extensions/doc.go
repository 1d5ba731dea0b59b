// Package extensions compares the extensions an editor has installed with
// the extensions a project requires, and installs the difference.
//
// Each editor is queried through its own CLI with --list-extensions. A
// failed query is recorded as that editor's outcome and never stops the
// remaining editors from being checked.
package extensions
