// Package bqsync converts the core transpiler's BigQuery field tree into the
// real cloud.google.com/go/bigquery SDK's schema type, so a caller can hand
// a produced schema straight to (*bigquery.Table).Update to migrate a live
// table. This is a supplement (SPEC_FULL.md §3.5): not present in the
// distilled spec, but present in spirit in the original project's real
// deployment inside mozilla's bigquery-etl, which pushes transpiler output
// to live BigQuery tables.
package bqsync

import (
	"cloud.google.com/go/bigquery"

	"github.com/schemalattice/transpiler"
)

// ToFieldSchema converts one BqField (and its nested Fields, recursively)
// into a *bigquery.FieldSchema.
func ToFieldSchema(f *transpiler.BqField) *bigquery.FieldSchema {
	if f == nil {
		return nil
	}

	field := &bigquery.FieldSchema{
		Name:     f.Name,
		Type:     toBigQueryFieldType(f.Type),
		Repeated: f.Mode == transpiler.BqModeRepeated,
		Required: f.Mode == transpiler.BqModeRequired,
	}

	for _, sub := range f.Fields {
		field.Schema = append(field.Schema, ToFieldSchema(sub))
	}
	return field
}

// Schema converts a root BqField into a full bigquery.Schema, suitable for
// bigquery.Table.Create or bigquery.Table.Update(bigquery.TableMetadataToUpdate{Schema: ...}).
func Schema(root *transpiler.BqField) bigquery.Schema {
	if root == nil {
		return nil
	}
	if root.Type != transpiler.BqTypeRecord {
		return bigquery.Schema{ToFieldSchema(root)}
	}
	out := make(bigquery.Schema, 0, len(root.Fields))
	for _, f := range root.Fields {
		out = append(out, ToFieldSchema(f))
	}
	return out
}

func toBigQueryFieldType(t transpiler.BqType) bigquery.FieldType {
	switch t {
	case transpiler.BqTypeRecord:
		return bigquery.RecordFieldType
	case transpiler.BqTypeString:
		return bigquery.StringFieldType
	case transpiler.BqTypeInteger:
		return bigquery.IntegerFieldType
	case transpiler.BqTypeFloat:
		return bigquery.FloatFieldType
	case transpiler.BqTypeBoolean:
		return bigquery.BooleanFieldType
	default:
		return bigquery.StringFieldType
	}
}
