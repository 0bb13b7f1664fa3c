package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/slinky/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/slinky/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/slinky/internal/version.Date={{.Date}}
)

// Short returns the version with its commit, as shown by --version.
func Short() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
