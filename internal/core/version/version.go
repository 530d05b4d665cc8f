// Package version reports what build is running
package version

import "runtime/debug"

// BuildInfo is the build identity served on /meta/version
type BuildInfo struct {
	Service string `json:"service" example:"labelit"`
	Version string `json:"version" example:"v0.1.0"`
	Commit  string `json:"commit"  example:"abcd123"`
	Date    string `json:"date"    example:"2026-10-01"`
}

// set with -ldflags "-X labelit/internal/core/version.version=v0.1.0 -X ...commit=abcd -X ...date=2026-10-01"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

var readBuild = debug.ReadBuildInfo

// Info returns the linker stamped values, falling back to the vcs settings go build embeds
func Info() BuildInfo {
	bi := BuildInfo{Service: "labelit", Version: version, Commit: commit, Date: date}
	if info, ok := readBuild(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
