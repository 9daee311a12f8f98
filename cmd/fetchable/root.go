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
	Use:   "fetchable",
	Short: "Fetch, validate, and decode JSON resources",
	Long: `Fetchable retrieves JSON resources and decodes them with a strict
failure taxonomy: transport failures, bad statuses, missing bodies, and
decode failures are distinct and exactly one is reported per fetch.

Requests can be issued ad hoc (get) or described declaratively in YAML
definition files (check, run).`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "json", "Output format (json, pretty)")

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
