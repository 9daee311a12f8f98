package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("fetchable %s\n", version)
		cmd.Printf("  commit:     %s\n", commit)
		cmd.Printf("  built:      %s\n", buildDate)
		cmd.Printf("  go version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
