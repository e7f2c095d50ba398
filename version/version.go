// Package version exposes build identity for the service. Version and
// Commit are injected at build time with -ldflags; Commit falls back to
// the VCS revision recorded in the binary.
package version

import "runtime/debug"

var (
	// Version is the release version, "dev" for local builds.
	Version = "dev"
	// Commit is the short VCS revision the binary was built from.
	Commit = ""
)

// Info is the build identity reported by the service.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// Get returns the build identity, filling Commit and GoVersion from
// the embedded build info when they were not set at link time.
func Get() Info {
	info := Info{Version: Version, Commit: Commit}
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = build.GoVersion
	if info.Commit == "" {
		for _, setting := range build.Settings {
			if setting.Key == "vcs.revision" {
				info.Commit = setting.Value
				if len(info.Commit) > 7 {
					info.Commit = info.Commit[:7]
				}
				break
			}
		}
	}
	return info
}
