// Package version exposes the build identity of this kit.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/ayalpani/remotekit/version.Version=1.0.0"
//
// When the ldflags are absent, the values fall back to the VCS metadata
// embedded by the Go toolchain.
package version
