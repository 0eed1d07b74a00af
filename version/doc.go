// Package version reports the council's build version.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/llmcouncil/version.Version=1.2.0" ./cmd/council
//
// Unset values fall back to the VCS stamps the Go toolchain embeds.
package version
