package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidefall/fetchable"
	"github.com/tidefall/fetchable/yaml"
)

var runCmd = &cobra.Command{
	Use:   "run FILE NAME",
	Short: "Execute a named request from a YAML definition file",
	Args:  cobra.ExactArgs(2),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	doc, err := yaml.NewParser().ParseFile(args[0])
	if err != nil {
		return err
	}

	def, ok := doc.Request(args[1])
	if !ok {
		return fmt.Errorf("request %q not found in %s", args[1], args[0])
	}

	var opts []fetchable.Option
	if verbose {
		opts = append(opts, fetchable.WithLogger(stderrLogger{}))
	}

	f, err := yaml.Build(def, opts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	value, err := f.Fetch(ctx)
	if err != nil {
		return err
	}
	return printValue(cmd, value)
}
