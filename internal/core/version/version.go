// Package version reports what binary is running.
//
// Release builds stamp the variables below:
//
//	-ldflags "-X chatstats/internal/core/version.version=v0.1.0 -X chatstats/internal/core/version.commit=abcd"
//
// Unstamped builds fall back to the VCS data the go tool embeds, when present
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is served on /version and printed by the CLI
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Info returns the stamped build info
func Info() BuildInfo {
	b := BuildInfo{Service: "chatstats", Version: version, Commit: commit, Date: date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	b.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && b.Commit == "none":
			b.Commit = s.Value
		case s.Key == "vcs.time" && b.Date == "unknown":
			b.Date = s.Value
		}
	}
	return b
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}
