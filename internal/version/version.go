package version

import "fmt"

// Build-time variables (set via ldflags during release builds)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func PrintVersion() {
	fmt.Printf("tusk-sheet (version: %s)\n", Version)
	if BuildTime != "unknown" {
		fmt.Printf("Build Time: %s\n", BuildTime)
	}
	if GitCommit != "unknown" {
		fmt.Printf("Git Commit: %s\n", GitCommit)
	}
}
