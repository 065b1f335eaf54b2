package info

import "runtime/debug"

const modulePath = "github.com/slok/tsplot"

var (
	// Version is the version of the app, set at build time with ldflags.
	Version = ""
)

func init() {
	if Version != "" {
		return
	}

	Version = versionFromBuildInfo()
}

func versionFromBuildInfo() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	// Built with `go install github.com/slok/tsplot/cmd/tsplot@<version>`.
	if bi.Main.Path == modulePath && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	// Imported as a dependency.
	for _, d := range bi.Deps {
		if d.Path == modulePath {
			return d.Version
		}
	}

	return "dev"
}
