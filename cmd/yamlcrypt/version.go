package main

import "runtime/debug"

// version holds the release version stamped by the build:
// -X main.version=x.y.z
var version string

// Version resolves the CLI version. A release build stamps it via ldflags;
// a plain `go install` falls back to the module version recorded in the
// build info, and anything else reports "dev".
var Version = func() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}()
