// Package version reports the pipey build.
//
// Version, commit, branch and build time are set at compile time:
//
//	go build -ldflags "-X github.com/kbukum/pipey/version.Version=1.0.0" ./cmd/pipey
//
// Missing values fall back to the VCS stamps in the binary's build info.
package version
