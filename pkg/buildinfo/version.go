// Package buildinfo carries version information stamped in at build time:
//
//	go build -ldflags "-X github.com/matzehuels/ermview/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/ermview/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/ermview/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/ermview
package buildinfo

import "fmt"

// Set via -ldflags; the defaults mark a local build.
var (
	// Version is the release tag, e.g. "v0.3.0".
	// Set via -X github.com/matzehuels/ermview/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the short git SHA the binary was built from.
	// Set via -X github.com/matzehuels/ermview/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the UTC build time in RFC 3339 form.
	// Set via -X github.com/matzehuels/ermview/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the --version template for cobra. {{.Name}} is filled in
// by cobra with the root command name.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
