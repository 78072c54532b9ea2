// Package buildinfo carries version stamps set with -ldflags at build time.
package buildinfo

import "fmt"

var (
	// Version will be set via ldflags during build.
	Version = "dev"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)

// Summary is the string printed by --version.
func Summary() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
