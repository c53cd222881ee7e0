package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/schemalattice/transpiler"
)

// usageError marks an error that should exit exitUsageError (64), per
// spec.md §6 — malformed/missing flags rather than a schema or I/O problem.
type usageError struct{ err error }

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }

func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// exitCodeFor maps an error to one of spec.md §6's exit codes.
func exitCodeFor(err error) int {
	var usage *usageError
	switch {
	case errors.As(err, &usage):
		return exitUsageError
	case errors.Is(err, transpiler.ErrParse), errors.Is(err, transpiler.ErrUnsupportedType), errors.Is(err, transpiler.ErrInvalidName):
		return exitParseError
	case errors.Is(err, transpiler.ErrIO):
		return exitIOError
	default:
		// Anything else (unknown flag, bad flag syntax) comes from cobra's
		// own pflag parsing and is a usage problem, not a transpile failure.
		return exitUsageError
	}
}

// formatFlag is a pflag.Value that only accepts the two target names
// spec.md §6 defines, so an invalid --format is rejected at flag-parse
// time with cobra's own usage-error path instead of inside RunE.
type formatFlag struct {
	target transpiler.Target
	set    bool
}

func (f *formatFlag) String() string {
	if !f.set {
		return ""
	}
	return string(f.target)
}

func (f *formatFlag) Set(value string) error {
	switch transpiler.Target(value) {
	case transpiler.TargetBigQuery, transpiler.TargetAvro:
		f.target = transpiler.Target(value)
		f.set = true
		return nil
	default:
		return fmt.Errorf("must be one of bigquery, avro (got %q)", value)
	}
}

func (f *formatFlag) Type() string { return "string" }

var _ pflag.Value = (*formatFlag)(nil)

func newTranspileCmd() *cobra.Command {
	var source, output, rootName string
	format := &formatFlag{}

	cmd := &cobra.Command{
		Use:   "transpile",
		Short: "Transpile a JSON Schema file into a BigQuery or Avro schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				return newUsageError("--source is required")
			}
			if !format.set {
				return newUsageError("--format is required")
			}

			schemaBytes, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("%w: %v", transpiler.ErrIO, err)
			}

			result, err := transpiler.Transpile(schemaBytes, format.target, rootName)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(result))
				return err
			}
			if err := os.WriteFile(output, append(result, '\n'), 0o644); err != nil {
				return fmt.Errorf("%w: %v", transpiler.ErrIO, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "path to a JSON Schema file (required)")
	cmd.Flags().Var(format, "format", "target schema language: bigquery or avro (required)")
	cmd.Flags().StringVar(&output, "output", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&rootName, "root-name", "root", "root record name used by the Avro synthesizer")

	return cmd
}
