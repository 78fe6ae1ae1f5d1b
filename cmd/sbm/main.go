// Command sbm is the Site Builder Migrator CLI: a thin cobra wrapper
// around internal/migrate.Run that loads .sbm.yaml, detects the OEM
// policy, runs the migration, prints the rendered Report, and sets the
// process exit code from the run's outcome (spec.md §7: "the
// orchestrator prints the report and sets the exit code; the core
// itself performs no console output").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// flagDebug enables the development (console, debug-level) obslog
// encoder instead of the default production JSON one.
var flagDebug bool

var rootCmd = &cobra.Command{
	Use:     "sbm",
	Short:   "sbm migrates a dealer theme's legacy stylesheets to the Site Builder dialect",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate("sbm version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "emit a verbose, human-readable run trace")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(lastExitCode))
	}
	os.Exit(int(lastExitCode))
}
