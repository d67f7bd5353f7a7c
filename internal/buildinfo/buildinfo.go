// Package buildinfo holds version metadata stamped at link time:
//
//	go build -ldflags "-X vending/internal/buildinfo.Version=v1.2.3" ./cmd/vend
package buildinfo

// Version is the release version, "dev" for local builds.
var Version = "dev"
