// Package version holds the planfinder build metadata injected via
// ldflags. The server logs Version and Commit on startup.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
