package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/tidefall/fetchable"
	"github.com/tidefall/fetchable/pipeline"
)

var (
	getHeaders    []string
	getTimeout    time.Duration
	getRetries    int
	getPath       string
	getSchemaFile string
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Fetch a URL and decode the JSON payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringArrayVarP(&getHeaders, "header", "H", nil, "Request header (key: value), repeatable")
	getCmd.Flags().DurationVar(&getTimeout, "timeout", 30*time.Second, "Request timeout")
	getCmd.Flags().IntVar(&getRetries, "retry", 0, "Retries after the first attempt")
	getCmd.Flags().StringVar(&getPath, "path", "", "JSONPath to extract from the decoded payload")
	getCmd.Flags().StringVar(&getSchemaFile, "schema", "", "JSON Schema file to validate the payload against")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	url := args[0]

	opts := []fetchable.Option{fetchable.WithTimeout(getTimeout)}
	if getRetries > 0 {
		opts = append(opts, fetchable.WithRetry(getRetries, time.Second))
	}
	for _, h := range getHeaders {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("invalid header %q, want key: value", h)
		}
		opts = append(opts, fetchable.WithHeader(strings.TrimSpace(key), strings.TrimSpace(value)))
	}
	if verbose {
		opts = append(opts, fetchable.WithLogger(stderrLogger{}))
	}

	client := fetchable.NewClient(opts...)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	value, _, err := fetchable.GetValue(ctx, client, url)
	if err != nil {
		return err
	}

	if getSchemaFile != "" {
		schemaJSON, err := os.ReadFile(getSchemaFile) // #nosec G304 - user-provided path
		if err != nil {
			return fmt.Errorf("read schema: %w", err)
		}
		gate, err := pipeline.Schema(schemaJSON)
		if err != nil {
			return err
		}
		if value, err = gate.Run(ctx, value); err != nil {
			return err
		}
	}

	if getPath != "" {
		extract, err := pipeline.Extract(getPath)
		if err != nil {
			return err
		}
		if value, err = extract.Run(ctx, value); err != nil {
			return err
		}
	}

	return printValue(cmd, value)
}

func printValue(cmd *cobra.Command, value any) error {
	switch output {
	case "pretty":
		cmd.Println(oj.JSON(value, 2))
	case "json":
		cmd.Println(oj.JSON(value))
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
	return nil
}
