// Package version provides build version information for dtypes.
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/coral-mesh/dtypes/pkg/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `json:"version" yaml:"version" header:"VERSION"`
	GitCommit string `json:"git_commit" yaml:"git_commit" header:"COMMIT"`
	BuildDate string `json:"build_date" yaml:"build_date" header:"BUILD DATE"`
	GoVersion string `json:"go_version" yaml:"go_version" header:"GO"`
	Platform  string `json:"platform" yaml:"platform" header:"PLATFORM"`
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short returns "dtypes <version> (<commit>)", the commit truncated to seven
// characters.
func (i Info) Short() string {
	commit := i.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("dtypes %s (%s)", i.Version, commit)
}
