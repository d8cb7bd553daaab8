package version

import (
	"fmt"
	"runtime"
)

// Set through -ldflags "-X github.com/MrSnakeDoc/shelf/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// String renders the build identity for startup logs and `shelfctl version`.
func String() string {
	return fmt.Sprintf("shelf %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
