package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalattice/transpiler"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := buildRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSchema(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRootCommandTranspileToBigQuery(t *testing.T) {
	source := writeSchema(t, `{"type": "object", "properties": {"name": {"type": "string"}}}`)

	out, err := runCLI(t, "--source", source, "--format", "bigquery")
	require.NoError(t, err)
	assert.Contains(t, out, `"RECORD"`)
}

func TestRootCommandMissingSourceIsUsageError(t *testing.T) {
	_, err := runCLI(t, "--format", "bigquery")
	require.Error(t, err)
	assert.Equal(t, exitUsageError, exitCodeFor(err))
}

func TestRootCommandInvalidFormatIsRejectedAtParseTime(t *testing.T) {
	source := writeSchema(t, `{"type": "string"}`)
	_, err := runCLI(t, "--source", source, "--format", "xml")
	require.Error(t, err)
}

func TestRootCommandParseErrorExitsOne(t *testing.T) {
	source := writeSchema(t, `{"type": "widget"}`)
	_, err := runCLI(t, "--source", source, "--format", "bigquery")
	require.Error(t, err)
	assert.Equal(t, exitParseError, exitCodeFor(err))
	assert.ErrorIs(t, err, transpiler.ErrUnsupportedType)
}

func TestRootCommandWritesToOutputFile(t *testing.T) {
	source := writeSchema(t, `{"type": "string"}`)
	output := filepath.Join(t.TempDir(), "out.json")

	_, err := runCLI(t, "--source", source, "--format", "avro", "--output", output)
	require.NoError(t, err)

	contents, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "string")
}

func TestBqSyncSubcommand(t *testing.T) {
	source := writeSchema(t, `{"type": "object", "properties": {"name": {"type": "string"}}}`)

	out, err := runCLI(t, "bq-sync", "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "STRING")
}

func TestValidateSubcommandReportsInvalidPayload(t *testing.T) {
	source := writeSchema(t, `{"type": "object", "properties": {"age": {"type": "integer"}}, "required": ["age"]}`)

	payloadDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(payloadDir, "bad.json"), []byte(`{"age": "not-a-number"}`), 0o644))

	out, err := runCLI(t, "validate", "--source", source, "--payloads", payloadDir)
	require.Error(t, err)
	assert.Contains(t, out, "bad.json: invalid")
}
