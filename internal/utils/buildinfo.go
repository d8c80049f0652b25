// Package utils provides helper functions shared across the treemark CLI.
package utils

import "runtime/debug"

const unknownVersion = "unknown"

// GetApplicationVersion determines the application version from Go build info.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
