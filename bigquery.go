package transpiler

import "sort"

// BqMode is a BigQuery field mode.
type BqMode string

const (
	BqModeRequired BqMode = "REQUIRED"
	BqModeNullable BqMode = "NULLABLE"
	BqModeRepeated BqMode = "REPEATED"
)

// BqType is a BigQuery field type (spec §3.2; this module emits the subset
// named there).
type BqType string

const (
	BqTypeRecord  BqType = "RECORD"
	BqTypeString  BqType = "STRING"
	BqTypeInteger BqType = "INTEGER"
	BqTypeFloat   BqType = "FLOAT"
	BqTypeBoolean BqType = "BOOLEAN"
)

// BqField mirrors the BigQuery table-schema JSON shape (spec §3.2):
// {name, type, mode, fields?}, fields present only when type is RECORD.
// json struct tags drive serialization directly, the same way the teacher's
// own Schema struct round-trips via tags rather than a hand-written
// marshaler for this simple a shape.
type BqField struct {
	Name   string     `json:"name,omitempty"`
	Type   BqType     `json:"type"`
	Mode   BqMode     `json:"mode"`
	Fields []*BqField `json:"fields,omitempty"`
}

// ToBigQuery lowers a normalized Schema into a top-level BqField per
// spec §4.5. A REPEATED top-level mode (a root array, map or tuple) is
// kept, since REPEATED wins over all other modes; any other top-level
// result has mode REQUIRED.
func ToBigQuery(s Schema) *BqField {
	f := lowerBigQuery("", s)
	if f.Mode != BqModeRepeated {
		f.Mode = BqModeRequired
	}
	return f
}

func lowerBigQuery(name string, s Schema) *BqField {
	switch v := s.(type) {
	case *Atom:
		return &BqField{Name: name, Type: bqAtomType(v.Kind), Mode: bqMode(v.Nullable)}

	case *Object:
		return &BqField{Name: name, Type: BqTypeRecord, Mode: bqMode(v.Nullable), Fields: lowerBigQueryFields(v)}

	case *Array:
		field := lowerBigQuery(name, v.Items)
		field.Mode = BqModeRepeated
		return field

	case *Map:
		value := lowerBigQuery("value", v.Value)
		value.Mode = BqModeRequired
		return &BqField{
			Name: name,
			Type: BqTypeRecord,
			Mode: BqModeRepeated,
			Fields: []*BqField{
				{Name: "key", Type: BqTypeString, Mode: BqModeRequired},
				value,
			},
		}

	case *Tuple:
		merged := mergeTupleItems(v.Items)
		field := lowerBigQuery(name, merged)
		field.Mode = BqModeRepeated
		return field

	default:
		return &BqField{Name: name, Type: BqTypeString, Mode: bqMode(s.IsNullable())}
	}
}

// lowerBigQueryFields lowers an Object's fields, sorted by name, applying
// the required-overrides-mode rule (spec §4.5 "mode rules at a field
// site"): REPEATED wins over all, otherwise nullable -> NULLABLE, else
// REQUIRED.
func lowerBigQueryFields(o *Object) []*BqField {
	names := make([]string, 0, len(o.Fields))
	for name := range o.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]*BqField, 0, len(names))
	for _, name := range names {
		field := lowerBigQuery(name, o.Fields[name])
		if field.Mode != BqModeRepeated {
			if o.IsRequired(name) && !o.Fields[name].IsNullable() {
				field.Mode = BqModeRequired
			} else {
				field.Mode = BqModeNullable
			}
		}
		fields = append(fields, field)
	}
	return fields
}

func bqAtomType(kind AtomKind) BqType {
	switch kind {
	case KindInt:
		return BqTypeInteger
	case KindFloat:
		return BqTypeFloat
	case KindBool:
		return BqTypeBoolean
	case KindString:
		return BqTypeString
	case KindJSON, KindNull:
		return BqTypeString
	default:
		return BqTypeString
	}
}

func bqMode(nullable bool) BqMode {
	if nullable {
		return BqModeNullable
	}
	return BqModeRequired
}

// mergeTupleItems folds a Tuple's item schemas into a single merged type
// via the §4.4 lattice, since BigQuery has no tuple type (spec §4.5 last
// bullet, §9 "tuple vs array").
func mergeTupleItems(items []Schema) Schema {
	if len(items) == 0 {
		return jsonAtom(false)
	}
	merged := items[0]
	for _, next := range items[1:] {
		merged = Merge(merged, next)
	}
	return merged
}
