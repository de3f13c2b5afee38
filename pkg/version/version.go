// Package version identifies the running build.
package version

// Name is the application name used in logs and CLI output.
const Name = "stacks"

// Version is set at build time:
// go build -ldflags "-X github.com/shishobooks/stacks/pkg/version.Version=1.0.0".
var Version = "dev"

// String is the name and version, e.g. "stacks dev".
func String() string {
	return Name + " " + Version
}
