package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/schemalattice/transpiler"
	"github.com/schemalattice/transpiler/internal/validate"
)

// newValidateCmd is a supplement to spec.md §6 (SPEC_FULL.md §6.1): it runs
// internal/validate over a directory of sample *.json payloads, each file
// decoded as a single JSON document, against --source before a caller
// trusts that source enough to transpile it.
func newValidateCmd() *cobra.Command {
	var source, payloads string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate sample payloads against a JSON Schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				return newUsageError("--source is required")
			}
			if payloads == "" {
				return newUsageError("--payloads is required")
			}

			schemaBytes, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("%w: %v", transpiler.ErrIO, err)
			}

			compiler := validate.NewCompiler()
			schema, err := compiler.Compile(schemaBytes)
			if err != nil {
				return fmt.Errorf("%w: %v", transpiler.ErrParse, err)
			}

			entries, err := os.ReadDir(payloads)
			if err != nil {
				return fmt.Errorf("%w: %v", transpiler.ErrIO, err)
			}

			invalid := 0
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
					continue
				}
				path := filepath.Join(payloads, entry.Name())
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("%w: %v", transpiler.ErrIO, err)
				}

				var instance any
				if err := json.Unmarshal(raw, &instance); err != nil {
					return fmt.Errorf("%w: %s: %v", transpiler.ErrParse, entry.Name(), err)
				}

				result := schema.Validate(instance)
				if !result.IsValid() {
					invalid++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", entry.Name())
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", entry.Name())
			}

			if invalid > 0 {
				return fmt.Errorf("%d payload(s) failed validation", invalid)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "path to the JSON Schema file to validate against (required)")
	cmd.Flags().StringVar(&payloads, "payloads", "", "directory of sample *.json payloads (required)")

	return cmd
}
