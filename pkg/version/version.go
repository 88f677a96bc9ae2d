// Package version exposes the build version of virtuallist.
package version

import "runtime/debug"

// version is set at build time:
//
//	go build -ldflags "-X github.com/rshade/virtuallist/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Overridden via -ldflags.
var version = ""

// devVersion is reported when neither ldflags nor module info carry a version.
const devVersion = "dev"

// GetVersion returns the ldflags version, then the module version recorded by
// go install, then "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}
