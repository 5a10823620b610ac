// Package version holds build metadata set through -ldflags.
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/Rorical/RoriHost/internal/version.Version=1.2.3"
var Version = "dev"
