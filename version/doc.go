// Package version reports build information for the dbfixtures binary.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/dbfixtures/version.Version=1.0.0"
//
// Values left unset fall back to the VCS stamp embedded by the Go toolchain.
package version
