package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags.
	verbose bool
	output  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "texttools",
	Short: "Text, JSON and bounding-box nodes for visual workflows",
	Long: `Texttools exposes the JK-TextTools node table on the command line:
string splitting and joining, JSON formatting, detection queries, and
bounding-box / mask / segmentation conversions.

Every node is stateless; each invocation is an independent pure call.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&output, "output", "text", "Output format (text, json, yaml)")

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
