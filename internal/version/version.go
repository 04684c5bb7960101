package version // import "github.com/Xunop/gutenbrowse/internal/version"

import "fmt"

// Variables populated at build time with -ldflags "-X ...".
var (
	Version   = "0.1.0"
	Commit    = "HEAD"
	BuildDate = "undefined"
)

func GetCurrentVersion() string {
	return Version
}

// String returns the version followed by the commit and build date.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
