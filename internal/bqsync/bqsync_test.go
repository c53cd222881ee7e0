package bqsync

import (
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalattice/transpiler"
)

func TestToFieldSchemaAtom(t *testing.T) {
	field := transpiler.ToBigQuery(transpiler.NewAtom(transpiler.KindInt))
	out := ToFieldSchema(field)
	require.NotNil(t, out)
	assert.Equal(t, bigquery.IntegerFieldType, out.Type)
	assert.True(t, out.Required)
}

func TestSchemaConvertsRecordFields(t *testing.T) {
	obj := transpiler.NewObject()
	obj.SetField("name", transpiler.NewAtom(transpiler.KindString))
	obj.SetField("age", transpiler.NewAtom(transpiler.KindInt))

	root := transpiler.ToBigQuery(obj)
	schema := Schema(root)

	require.Len(t, schema, 2)
	byName := map[string]*bigquery.FieldSchema{}
	for _, f := range schema {
		byName[f.Name] = f
	}
	assert.Equal(t, bigquery.StringFieldType, byName["name"].Type)
	assert.Equal(t, bigquery.IntegerFieldType, byName["age"].Type)
}

func TestSchemaNilRoot(t *testing.T) {
	assert.Nil(t, Schema(nil))
}
