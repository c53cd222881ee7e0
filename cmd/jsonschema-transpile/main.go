// Command jsonschema-transpile is the CLI front-end for the transpiler
// module (spec.md §6): it reads a JSON Schema file, lowers it to either a
// BigQuery or Avro schema document, and writes the result to stdout or a
// file. Built on cobra the way rashadism-openchoreo's occ command builds
// its root command, rather than the teacher's own stdlib flag-based
// cmd/schemagen — this CLI transpiles schemas, it does not generate Go
// struct code, so it has no use for schemagen's verbose-logging voice.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes per spec.md §6.
const (
	exitSuccess    = 0
	exitParseError = 1
	exitIOError    = 2
	exitUsageError = 64
)

func main() {
	root := buildRootCmd()
	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jsonschema-transpile:", err)
		os.Exit(exitCodeFor(err))
	}
}

func buildRootCmd() *cobra.Command {
	root := newTranspileCmd()
	root.Use = "jsonschema-transpile"
	root.Short = "Transpile JSON Schema documents into BigQuery or Avro schemas"

	root.AddCommand(newValidateCmd())
	root.AddCommand(newBqSyncCmd())
	return root
}
