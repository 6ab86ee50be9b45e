// Package misc keeps build time information.
package misc

import "strings"

var (
	// set by the linker, see -ldflags "-X wordexport/misc.version=..."
	version = "dev"
	gitHash = "unknown"
	appName = "wordexport"
)

func GetVersion() string {
	return strings.TrimPrefix(version, "v")
}

func GetGitHash() string {
	return gitHash
}

func GetAppName() string {
	return appName
}
