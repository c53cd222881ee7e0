package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/schemalattice/transpiler"
	"github.com/schemalattice/transpiler/internal/bqsync"
)

// newBqSyncCmd is a supplement (SPEC_FULL.md §3.5/§6.1): it prints the
// cloud.google.com/go/bigquery FieldSchema JSON that a caller would hand to
// (*bigquery.Table).Update to migrate a live table to --source's shape.
func newBqSyncCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "bq-sync",
		Short: "Print the bigquery.FieldSchema JSON for a JSON Schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				return newUsageError("--source is required")
			}

			schemaBytes, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("%w: %v", transpiler.ErrIO, err)
			}

			ast, err := transpiler.ParseBytes(schemaBytes)
			if err != nil {
				return err
			}
			root := transpiler.ToBigQuery(transpiler.Normalize(ast))
			fieldSchema := bqsync.Schema(root)

			out, err := json.Marshal(fieldSchema)
			if err != nil {
				return fmt.Errorf("%w: %v", transpiler.ErrIO, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "path to a JSON Schema file (required)")
	return cmd
}
