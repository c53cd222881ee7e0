// Package sampledata downloads newline-delimited JSON sample payloads from
// S3 and folds them into a single representative JSON Schema document,
// grounded on original_source/scripts/mps-download-sampled-data.py. Neither
// the download path nor the schema-inference path belongs to the core
// transpiler (spec.md §1 names "S3 download / NDJSON extraction helpers" as
// out of scope) — this package only ever hands the core a JSON Schema byte
// slice or raw records; it never normalizes or synthesizes output schemas
// itself.
package sampledata

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"

	"github.com/schemalattice/transpiler"
	"github.com/schemalattice/transpiler/internal/validate"
)

// Downloader fetches sampled NDJSON documents from a single S3
// bucket/prefix pair, mirroring the original script's hardcoded
// bucket="telemetry-parquet" / prefix="sanitized-landfill-sample/..." pair,
// but made configurable per the idiomatic Go "accept config, don't hardcode"
// convention.
type Downloader struct {
	client     *s3.Client
	downloader *manager.Downloader
}

// NewDownloader loads the default AWS configuration (environment,
// shared config file, EC2/ECS role) and builds a Downloader around it.
func NewDownloader(ctx context.Context, optFns ...func(*config.LoadOptions) error) (*Downloader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transpiler.ErrNetworkFetch, err)
	}
	client := s3.NewFromConfig(cfg)
	return &Downloader{
		client:     client,
		downloader: manager.NewDownloader(client),
	}, nil
}

// Object is one downloaded S3 key together with its raw body.
type Object struct {
	Key  string
	Body []byte
}

// List returns every object under bucket/prefix whose key ends in ".json",
// the same filter the original script applies before attempting to decode
// a key's body as NDJSON.
func (d *Downloader) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(d.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", transpiler.ErrNetworkFetch, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, ".json") {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

// Fetch downloads a single key's full body into memory.
func (d *Downloader) Fetch(ctx context.Context, bucket, key string) (*Object, error) {
	buf := manager.NewWriteAtBuffer(nil)
	if _, err := d.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", transpiler.ErrNetworkFetch, err)
	}
	return &Object{Key: key, Body: buf.Bytes()}, nil
}

// ParseSchemaName derives "{namespace}.{doctype}.{docver}" from an S3 key
// shaped like the original's sanitized-landfill-sample layout:
// ".../namespace=bar/doc_type=foo/doc_version=1/....json". Falls back to
// joining the last three path segments (minus extension) when any of the
// namespace=/doc_type=/doc_version= query-style segments is missing.
func ParseSchemaName(key string) (string, error) {
	segments := strings.Split(strings.TrimSuffix(key, ".json"), "/")
	if len(segments) < 3 {
		return "", fmt.Errorf("%w: key %q too shallow to derive a schema name", transpiler.ErrDataRead, key)
	}

	var namespace, doctype, docver string
	for _, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "namespace="):
			namespace = strings.TrimPrefix(seg, "namespace=")
		case strings.HasPrefix(seg, "doc_type="):
			doctype = strings.TrimPrefix(seg, "doc_type=")
		case strings.HasPrefix(seg, "doc_version="):
			docver = strings.TrimPrefix(seg, "doc_version=")
		}
	}
	if namespace != "" && doctype != "" && docver != "" {
		return fmt.Sprintf("%s.%s.%s", namespace, doctype, docver), nil
	}

	n := len(segments)
	return fmt.Sprintf("%s.%s.%s", segments[n-3], segments[n-2], segments[n-1]), nil
}

// ExtractRecords splits a downloaded body into newline-delimited JSON
// records, the way the original script iterates body.split("\n") and reads
// each line's "content" field. A line whose JSON has a "content" string
// field is decoded from that field; otherwise the line itself is treated as
// the record. Malformed lines are counted as skipped rather than failing
// the whole batch, matching the original's per-line try/except.
func ExtractRecords(body []byte) (records []json.RawMessage, skipped int, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var envelope struct {
			Content string `json:"content"`
		}
		if jerr := json.Unmarshal(line, &envelope); jerr == nil && envelope.Content != "" {
			if json.Valid([]byte(envelope.Content)) {
				records = append(records, json.RawMessage(envelope.Content))
				continue
			}
		}
		if json.Valid(line) {
			records = append(records, json.RawMessage(append([]byte(nil), line...)))
			continue
		}
		skipped++
	}
	if serr := scanner.Err(); serr != nil {
		return records, skipped, fmt.Errorf("%w: %v", transpiler.ErrDataRead, serr)
	}
	return records, skipped, nil
}

// InferSchema folds a batch of decoded sample records into one
// representative JSON Schema document: each record's shape is inferred
// independently, compiled with internal/validate, and the per-record
// *validate.Schema values are folded together with validate.MergeSchemas
// (adapted from the teacher's schemamerge.go), producing a single schema
// document that accepts any record in the batch. The merged schema is
// re-marshaled to JSON so it can be fed straight into transpiler.Transpile.
func InferSchema(records []json.RawMessage) (json.RawMessage, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records to infer a schema from", transpiler.ErrDataRead)
	}

	compiler := validate.NewCompiler()
	var merged *validate.Schema

	for i, record := range records {
		var value any
		if err := json.Unmarshal(record, &value); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", transpiler.ErrParse, i, err)
		}

		shape := inferShape(value)
		shapeJSON, err := json.Marshal(shape)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", transpiler.ErrParse, i, err)
		}

		schema, err := compiler.Compile(shapeJSON)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", transpiler.ErrParse, i, err)
		}

		merged = validate.MergeSchemas(merged, schema)
	}

	return json.Marshal(merged)
}

// inferShape builds a minimal JSON-Schema-shaped map describing a single
// decoded JSON value: object property sets, array item types, and scalar
// types. It is intentionally shallow (one level of "required" per object,
// no enum/format inference) — good enough to hand the core a schema that
// round-trips the sampled shape, not a full schema-inference engine.
func inferShape(v any) map[string]any {
	switch val := v.(type) {
	case nil:
		return map[string]any{"type": "null"}
	case bool:
		return map[string]any{"type": "boolean"}
	case string:
		return map[string]any{"type": "string"}
	case float64:
		if val == float64(int64(val)) {
			return map[string]any{"type": "integer"}
		}
		return map[string]any{"type": "number"}
	case []any:
		shape := map[string]any{"type": "array"}
		if len(val) > 0 {
			shape["items"] = inferShape(val[0])
		}
		return shape
	case map[string]any:
		props := make(map[string]any, len(val))
		required := make([]string, 0, len(val))
		for key, field := range val {
			props[key] = inferShape(field)
			required = append(required, key)
		}
		return map[string]any{
			"type":       "object",
			"properties": props,
			"required":   required,
		}
	default:
		return map[string]any{}
	}
}
