// Package version exposes build version information for the server.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Info represents the server's build identity, reported by the health
// endpoint and the startup log.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

// Get returns the build identity, falling back to the embedded VCS
// metadata when the ldflags variables were not set.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		if info.GitCommit == "" {
			for _, setting := range buildInfo.Settings {
				if setting.Key == "vcs.revision" {
					info.GitCommit = setting.Value
					if len(info.GitCommit) > 7 {
						info.GitCommit = info.GitCommit[:7]
					}
				}
			}
		}
	}
	return info
}

// Short returns a one-line version string.
func Short() string {
	info := Get()
	if info.GitCommit != "" {
		return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
	}
	return info.Version
}
