package sampledata

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchemaNameFromDocTypeSegments(t *testing.T) {
	name, err := ParseSchemaName("sanitized-landfill-sample/namespace=telemetry/doc_type=main/doc_version=4/part.json")
	require.NoError(t, err)
	assert.Equal(t, "telemetry.main.4", name)
}

func TestParseSchemaNameFallsBackToTrailingSegments(t *testing.T) {
	name, err := ParseSchemaName("a/telemetry/main/4.json")
	require.NoError(t, err)
	assert.Equal(t, "telemetry.main.4", name)
}

func TestParseSchemaNameRejectsShallowKeys(t *testing.T) {
	_, err := ParseSchemaName("only.json")
	assert.Error(t, err)
}

func TestExtractRecordsUnwrapsContentField(t *testing.T) {
	body := []byte(`{"content": "{\"a\": 1}"}
{"content": "{\"a\": 2}"}
`)
	records, skipped, err := ExtractRecords(body)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"a": 1}`, string(records[0]))
}

func TestExtractRecordsFallsBackToBareLine(t *testing.T) {
	body := []byte(`{"a": 1}
`)
	records, skipped, err := ExtractRecords(body)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, records, 1)
}

func TestExtractRecordsSkipsMalformedLines(t *testing.T) {
	body := []byte("not json at all\n{\"content\": \"{\\\"a\\\": 1}\"}\n")
	records, skipped, err := ExtractRecords(body)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Len(t, records, 1)
}

func TestInferSchemaMergesAcrossRecords(t *testing.T) {
	records := []json.RawMessage{
		json.RawMessage(`{"name": "alice", "age": 30}`),
		json.RawMessage(`{"name": "bob", "age": 41, "active": true}`),
	}

	merged, err := InferSchema(records)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(merged, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "merged schema should carry a properties object")
	assert.Contains(t, props, "name")
	assert.Contains(t, props, "age")
	assert.Contains(t, props, "active")
}

func TestInferSchemaRejectsEmptyBatch(t *testing.T) {
	_, err := InferSchema(nil)
	assert.Error(t, err)
}
