package transpiler

import (
	"fmt"
	"strings"
)

// AvroSchema is a generic Avro schema-JSON node. Avro's own type grammar is
// polymorphic (a schema is sometimes a bare string, sometimes an object,
// sometimes an array of alternatives) so this module represents it as a
// plain any-valued tree built directly from map[string]any/[]any/string,
// the same representation the parser consumes — there is no closed Go type
// that can describe Avro's schema language any more precisely without
// fighting json.Marshal's output shape.
type AvroSchema = any

// ToAvro lowers a normalized Schema into an Avro 1.x schema JSON value
// (spec §4.6). rootName seeds the record-naming rule in §6 ("record names
// are derived from a path... to guarantee uniqueness").
func ToAvro(s Schema, rootName string) (AvroSchema, error) {
	return lowerAvro(s, []string{rootName})
}

func lowerAvro(s Schema, path []string) (AvroSchema, error) {
	switch v := s.(type) {
	case *Atom:
		return wrapNullable(avroAtomType(v.Kind), v.Nullable), nil

	case *Object:
		name, err := mangleName(strings.Join(path, "_"))
		if err != nil {
			return nil, err
		}
		fields := make([]any, 0, len(v.Order))
		for _, fieldName := range v.Order {
			fieldType, err := lowerAvro(v.Fields[fieldName], append(path, fieldName))
			if err != nil {
				return nil, err
			}
			mangled, err := mangleName(fieldName)
			if err != nil {
				return nil, err
			}
			field := map[string]any{"name": mangled, "type": fieldType}
			if v.Fields[fieldName].IsNullable() {
				field["default"] = nil
			}
			fields = append(fields, field)
		}
		record := map[string]any{"type": "record", "name": name, "fields": fields}
		return wrapNullable(record, v.Nullable), nil

	case *Array:
		items, err := lowerAvro(v.Items, append(path, "item"))
		if err != nil {
			return nil, err
		}
		return wrapNullable(map[string]any{"type": "array", "items": items}, v.Nullable), nil

	case *Map:
		values, err := lowerAvro(v.Value, append(path, "value"))
		if err != nil {
			return nil, err
		}
		return wrapNullable(map[string]any{"type": "map", "values": values}, v.Nullable), nil

	case *Tuple:
		merged := mergeTupleItems(v.Items)
		items, err := lowerAvro(merged, append(path, "item"))
		if err != nil {
			return nil, err
		}
		return wrapNullable(map[string]any{"type": "array", "items": items}, v.Nullable), nil

	default:
		return wrapNullable("string", s.IsNullable()), nil
	}
}

func avroAtomType(kind AtomKind) string {
	switch kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "double"
	case KindBool:
		return "boolean"
	case KindString, KindJSON, KindNull:
		return "string"
	default:
		return "string"
	}
}

// wrapNullable implements spec §4.6 "nullable fields are wrapped
// [\"null\", T]".
func wrapNullable(t any, nullable bool) any {
	if !nullable {
		return t
	}
	return []any{"null", t}
}

// mangleName implements the Avro name-mangling rule verbatim from spec §6:
// replace "-" and "." with "_"; if the first character is a digit, prefix
// an underscore; reject the empty string with InvalidName.
func mangleName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty avro name", ErrInvalidName)
	}
	replaced := strings.NewReplacer("-", "_", ".", "_").Replace(name)
	if replaced[0] >= '0' && replaced[0] <= '9' {
		replaced = "_" + replaced
	}
	return replaced, nil
}
