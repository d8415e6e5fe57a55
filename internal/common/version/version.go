package version

import (
	"fmt"
	"runtime"
)

// Version information - set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("vapt version %s\n  commit: %s\n  built: %s\n  go: %s\n  os/arch: %s/%s",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns the version shown in the interface header, with the
// abbreviated commit for development builds
func Short() string {
	if Version == "dev" && Commit != "unknown" {
		commit := Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		return Version + "+" + commit
	}
	return Version
}
