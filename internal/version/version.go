// Package version carries build metadata stamped in by the linker.
package version

import (
	"fmt"
	"runtime"
)

// Set via ldflags at build time:
//
//	go build -ldflags "-X github.com/soyeahso/llmsession/internal/version.Version=1.0.0
//	  -X github.com/soyeahso/llmsession/internal/version.Commit=abc123
//	  -X github.com/soyeahso/llmsession/internal/version.Date=2026-01-01"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Name is the program name used in banners and the HTTP User-Agent.
const Name = "llmsession"

// Info returns a formatted version string.
func Info() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		Name, Version, short(Commit), Date, runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent on every provider request.
func UserAgent() string {
	return Name + "/" + Version
}

// Fields returns the build metadata as flat key/value pairs.
func Fields() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
		"goos":    runtime.GOOS,
		"goarch":  runtime.GOARCH,
		"go":      runtime.Version(),
	}
}

func short(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
