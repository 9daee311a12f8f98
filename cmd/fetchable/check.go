package main

import (
	"github.com/spf13/cobra"

	"github.com/tidefall/fetchable/yaml"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a YAML request definition file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := yaml.NewParser().ParseFile(args[0])
	if err != nil {
		return err
	}

	// Building each definition catches schema, JSONPath, and script
	// errors that plain document validation cannot.
	for i := range doc.Requests {
		if _, err := yaml.Build(&doc.Requests[i]); err != nil {
			return err
		}
	}

	cmd.Printf("%s: %d request(s) valid\n", doc.Name, len(doc.Requests))
	for _, def := range doc.Requests {
		cmd.Printf("  %s\t%s\n", def.Name, def.URL)
	}
	return nil
}
