package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Name is the program name used in banners and the HTTP User-Agent
const Name = "samsung-tv-remote"

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/badisi/samsung-tv-remote/internal/version.Version=v1.2.3 \
//	                   -X github.com/badisi/samsung-tv-remote/internal/version.Commit=abc123"
//
// If not set, they are read from the VCS stamp in the build info, or fall
// back to "dev" with a timestamp.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		populateFromBuildInfo()
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// populateFromBuildInfo fills Version and Commit from Go's build info.
// A module version is used when the binary was installed with go install;
// otherwise the VCS stamp gives the commit and a dated dev version.
func populateFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	// "(devel)" marks a build from a local checkout
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, modified, vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	if Commit == "" && revision != "" {
		// Short hash, plus a marker for uncommitted changes
		Commit = revision
		if len(Commit) > 7 {
			Commit = Commit[:7]
		}
		if modified == "true" {
			Commit += "-dirty"
		}
	}

	// No tag in the build info, so date the dev version by its commit
	if Version == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent identifies this program in outgoing HTTP requests
func UserAgent() string {
	return Name + "/" + Version
}
