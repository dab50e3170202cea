// Package version carries the build identity stamped into the binary.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version and Commit are meant to be set through ldflags:
//
//	-X github.com/ultracontrol/ultractl/internal/version.Version=v0.3.0
//	-X github.com/ultracontrol/ultractl/internal/version.Commit=1a2b3c4
//
// A plain `go build` from a git checkout fills them from the embedded
// build info instead, and an untracked build reports a dated dev string.
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo()
	}
	if Commit == "" {
		Commit = "unknown"
	}
	if Version == "" {
		Version = "dev-" + time.Now().Format("20060102")
	}
}

func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	settings := map[string]string{}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if Commit == "" {
		if rev := settings["vcs.revision"]; rev != "" {
			if len(rev) > 7 {
				rev = rev[:7]
			}
			if settings["vcs.modified"] == "true" {
				rev += "-dirty"
			}
			Commit = rev
		}
	}

	// Tags are not part of build info; a dev version dated to the commit
	// is the best available stand-in.
	if Version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Full returns "version (commit: hash)" for display.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
