package oasgen

import (
	"fmt"
	"runtime"
)

var (
	// version, commit and buildTime are set via ldflags during build by GoReleaser
	// For development builds, these show "dev" and "unknown"
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns the identifier oasgen reports to MCP clients
func UserAgent() string {
	return fmt.Sprintf("oasgen/%s", version)
}

// BuildInfo returns the build metadata as printed by "oasgen version"
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
