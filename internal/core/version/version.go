// Package version reports the build identity of the running binary.
package version

// APIVersion is the public API contract version reported by /api/hello
const APIVersion = "1.0.0"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service    string `json:"service"`
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
	Commit     string `json:"commit"`
	Date       string `json:"date"`
}

// Info returns the build information. version, commit and date are stamped with
// -ldflags "-X 'reviewsentry/internal/core/version.version=v1.2.0' -X ...commit=abcd"
func Info() BuildInfo {
	return BuildInfo{
		Service:    "reviewsentry-api",
		Version:    version,
		APIVersion: APIVersion,
		Commit:     commit,
		Date:       date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
