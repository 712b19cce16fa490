package config

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build information.
// These variables are set at build time using ldflags. When they are not,
// the module version and VCS stamps recorded by the go tool are used.
var (
	BuildVersion   = "unknown"
	BuildTimestamp = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	Timestamp string
	Revision  string
	Dirty     bool
}

func (b BuildInfo) String() string {
	s := fmt.Sprintf("%s %s (%s) %s/%s", appName, b.Version, b.Timestamp, runtime.GOOS, runtime.GOARCH)
	if b.Revision != "" {
		s += " " + b.Revision
		if b.Dirty {
			s += "-dirty"
		}
	}
	return s
}

// ReadBuildInfo combines the ldflags variables with the binary's embedded
// build settings.
func ReadBuildInfo() BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return buildInfoFrom(BuildVersion, BuildTimestamp, bi)
}

func buildInfoFrom(version, timestamp string, bi *debug.BuildInfo) BuildInfo {
	info := BuildInfo{Version: version, Timestamp: timestamp}
	if bi == nil {
		return info
	}
	if info.Version == "unknown" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
			if len(info.Revision) > 12 {
				info.Revision = info.Revision[:12]
			}
		case "vcs.time":
			if info.Timestamp == "unknown" {
				info.Timestamp = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// GetBuildInfo returns a formatted string with build details.
func GetBuildInfo() string {
	return ReadBuildInfo().String()
}
