// Package buildinfo exposes the version metadata stamped into release
// binaries. The variables default to development values and are overridden
// through ldflags:
//
//	go build -ldflags "\
//	    -X github.com/squaremap/squaremap/pkg/buildinfo.Version=$(git describe --tags) \
//	    -X github.com/squaremap/squaremap/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/squaremap/squaremap/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Stamped at build time; the defaults mark an untagged source build.
var (
	Version = "dev"     // semantic version, e.g. "v0.3.0"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // UTC build timestamp
)

// Template returns the template rendered by cobra's --version flag.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
