package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/lazypony/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/lazypony/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/lazypony/internal/version.Date={{.Date}}
)

// String returns the version line shown by --version
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
