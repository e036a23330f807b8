// Package version reports the build version of skelly.
package version

import "runtime/debug"

// version is set at build time with -ldflags "-X github.com/indaco/skelly/internal/version.version=1.2.3".
var version = ""

const fallback = "0.0.0-dev"

// GetVersion returns the ldflags version, then the module version recorded
// by go install, then a development placeholder.
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return trimV(v)
		}
	}
	return fallback
}

func trimV(v string) string {
	if len(v) > 0 && v[0] == 'v' {
		return v[1:]
	}
	return v
}
