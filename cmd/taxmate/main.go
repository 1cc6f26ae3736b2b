// Command taxmate serves the TaxMate landing page and manages its waitlist.
package main

import (
	"log/slog"
	"os"

	"github.com/dtrue/taxmate/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	logger := logging.NewLogger(os.Stderr, slog.LevelInfo, false)
	if err := execute(os.Args[1:], os.Stdout); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
