package types

import "runtime"

// Version information for the postcollect library.
const (
	Version = "0.1.0"
	Name    = "postcollect"
)

// BuildInfo contains version and build information.
type BuildInfo struct {
	Version   string
	Name      string
	GoVersion string
}

// GetBuildInfo returns the current version information, for logs and help output.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Name:      Name,
		GoVersion: runtime.Version(),
	}
}

// UserAgent is the default User-Agent sent with every outgoing request.
func UserAgent() string {
	return Name + "/" + Version + " (+https://github.com/mrjoshuak/postcollect)"
}
