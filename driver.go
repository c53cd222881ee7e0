package transpiler

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Target names a downstream schema language this module can synthesize.
type Target string

const (
	TargetBigQuery Target = "bigquery"
	TargetAvro     Target = "avro"
)

// Transpile runs the full parse -> normalize -> synthesize pipeline
// described in spec §4.7. Normalization has no failure mode, so every
// error returned comes from the parse step, from an unrecognized target,
// or from Avro name mangling (ErrInvalidName for an empty root or field
// name).
func Transpile(jsonSchema []byte, target Target, rootName string) (json.RawMessage, error) {
	ast, err := ParseBytes(jsonSchema)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(ast)

	switch target {
	case TargetBigQuery:
		return json.Marshal(ToBigQuery(normalized))
	case TargetAvro:
		avroSchema, err := ToAvro(normalized, rootName)
		if err != nil {
			return nil, err
		}
		return json.Marshal(avroSchema)
	default:
		return nil, fmt.Errorf("%w: unknown target %q", ErrUnsupportedType, target)
	}
}
