// Package version reports which build of colophon is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X colophon/pkg/version.Version=1.2.3 ...". Release
// builds set all three; otherwise Get falls back to the module build info.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// AppName is reported in logs and version output.
const AppName = "colophon"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	Dirty     bool // Built from a worktree with uncommitted changes.
	GoVersion string
	Platform  string
}

// Get returns the build information, preferring ldflags values and filling
// the rest from the VCS stamps the go command embeds.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "none" {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String renders the information on one line, e.g.
// colophon 1.2.3 (abcdef012345, 2026-10-18T15:04:05Z) go1.23.5 linux/amd64
func (i Info) String() string {
	commit := i.GitCommit
	if i.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s %s (%s, %s) %s %s", AppName, i.Version, commit, i.BuildTime, i.GoVersion, i.Platform)
}
