// Package cmd holds extcheck build metadata, set with
// -ldflags "-X github.com/leeguoo/extcheck/cmd.Version=...".
package cmd

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
