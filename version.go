package transcache

// Version information for transcache.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/wearerequired/transcache.GitCommit=abc1234"
const (
	// Name is the application name.
	Name = "transcache"

	// Description is a short description of the application.
	Description = "Read-through cache for gettext and script translation catalogs"

	// Version is the semantic version of the application.
	Version = "1.1.0"

	// License is the software license.
	License = "GPL-2.0+"
)

// BuildInfo contains build-time information.
// These are typically set via ldflags during build.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// FullVersion returns the version string with optional build info.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}
