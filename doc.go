// Package transpiler converts JSON Schema documents into the schema
// languages of downstream analytic systems: BigQuery table schemas and
// Avro 1.x record schemas. The hard part is the normalization and
// type-inference engine in ast.go/parse.go/normalize.go/merge.go; the two
// synthesizers in bigquery.go/avro.go are comparatively mechanical lowering
// passes over the normalized AST.
package transpiler
