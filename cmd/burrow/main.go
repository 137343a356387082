package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/burrowdns/burrow/pkg/metrics"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "burrow",
	Short: "Burrow - Development DNS resolver with container discovery",
	Long: `Burrow is a small DNS resolver for development networks. It answers
address queries from three sources in strict order: hostnames discovered
from the local container engine's reverse-proxy labels, a static local
table, and one or two upstream recursive servers used as failover.

The configuration file is watched; rewriting it hot-swaps the running
server without overlapping listeners.`,
	Version: Version,
}

func init() {
	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Burrow version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))
	metrics.SetVersion(Version)

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(namesCmd)
}
