// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X greetbox/pkg/version.Version=v1.2.0 -X greetbox/pkg/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const appName = "greetbox"

// Info is the build metadata reported by the status endpoint and the CLI.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// IsDev reports whether the binary was built without a release version.
func (i Info) IsDev() bool {
	return i.Version == "" || i.Version == "dev"
}

// String renders a one-line, user-facing build string. Dev builds include
// the commit and build time.
func (i Info) String() string {
	if i.IsDev() {
		return fmt.Sprintf("%s/dev (commit: %s, built: %s, %s %s/%s)",
			appName, i.Commit, i.BuildTime, i.GoVersion, i.OS, i.Arch)
	}
	return fmt.Sprintf("%s/%s (%s/%s)", appName, i.Version, i.OS, i.Arch)
}
