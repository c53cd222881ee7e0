package transpiler

import (
	"fmt"
)

// ParseBytes decodes raw JSON text into the generic, order-preserving value
// tree the parser expects, then parses it into a Schema. This mirrors the
// teacher's compiler.go Compile, which does the same decode-into-generic-
// value step before building its own AST.
func ParseBytes(data []byte) (Schema, error) {
	value, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return Parse(value)
}

// Parse builds a Schema from a generic JSON value already decoded into an
// *orderedObject/[]any/scalar tree (spec §4.1).
func Parse(value any) (Schema, error) {
	return parseAt(value, nil)
}

func parseAt(value any, path []string) (Schema, error) {
	obj, ok := value.(*orderedObject)
	if !ok {
		return nil, atPath(fmt.Errorf("%w: schema is not a JSON object", ErrParse), path)
	}
	return parseObject(obj, path)
}

func parseObject(obj *orderedObject, path []string) (Schema, error) {
	if raw, ok := obj.get("oneOf"); ok {
		return parseCombinator(raw, path, "oneOf", false)
	}
	if raw, ok := obj.get("anyOf"); ok {
		return parseCombinator(raw, path, "anyOf", false)
	}
	if raw, ok := obj.get("allOf"); ok {
		return parseCombinator(raw, path, "allOf", true)
	}

	if raw, ok := obj.get("type"); ok {
		return parseTyped(obj, raw, path)
	}

	if raw, ok := obj.get("required"); ok {
		// A bare {"required": [...]} with no type, found inside an allOf
		// branch: contributes a required-set overlay, carried as an
		// Object with no fields (spec §4.1 last bullet).
		o := NewObject()
		for _, name := range stringSlice(raw) {
			o.MarkRequired(name)
		}
		return o, nil
	}

	// No recognized type keyword at all: treat as the opaque blob, since
	// there is nothing to lower deterministically.
	return NewAtom(KindJSON), nil
}

func parseCombinator(raw any, path []string, keyword string, intersection bool) (Schema, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, atPath(fmt.Errorf("%w: %s is not an array", ErrParse, keyword), path)
	}
	alts := make([]Schema, 0, len(items))
	for i, item := range items {
		s, err := parseAt(item, append(path, fmt.Sprintf("%s[%d]", keyword, i)))
		if err != nil {
			return nil, err
		}
		alts = append(alts, s)
	}
	if intersection {
		return NewIntersection(alts), nil
	}
	return NewUnion(alts), nil
}

func parseTyped(obj *orderedObject, typeValue any, path []string) (Schema, error) {
	switch t := typeValue.(type) {
	case string:
		return parseSingleType(obj, t, path)
	case []any:
		return parseTypeArray(obj, t, path)
	default:
		return nil, atPath(fmt.Errorf("%w: type is neither a string nor an array", ErrParse), path)
	}
}

// parseTypeArray treats `type: [...]` as a Union of atoms (spec §4.1). A
// "null" entry becomes an Atom(Null) alternative; Normalize later removes
// it and marks the result nullable.
func parseTypeArray(obj *orderedObject, types []any, path []string) (Schema, error) {
	alts := make([]Schema, 0, len(types))
	for _, tv := range types {
		name, ok := tv.(string)
		if !ok {
			return nil, atPath(fmt.Errorf("%w: type array element is not a string", ErrParse), path)
		}
		s, err := parseSingleType(obj, name, path)
		if err != nil {
			return nil, err
		}
		alts = append(alts, s)
	}
	return NewUnion(alts), nil
}

func parseSingleType(obj *orderedObject, typeName string, path []string) (Schema, error) {
	switch typeName {
	case "object":
		return parseObjectType(obj, path)
	case "array":
		return parseArrayType(obj, path)
	case "integer":
		return NewAtom(KindInt), nil
	case "number":
		return NewAtom(KindFloat), nil
	case "boolean":
		return NewAtom(KindBool), nil
	case "string":
		return NewAtom(KindString), nil
	case "null":
		return NewAtom(KindNull), nil
	default:
		return nil, atPath(fmt.Errorf("%w: %q", ErrUnsupportedType, typeName), path)
	}
}

// parseObjectType dispatches "object" between Object, Map, and the
// properties+additionalProperties degradation (spec §4.1, §9 "map
// detection").
func parseObjectType(obj *orderedObject, path []string) (Schema, error) {
	propsRaw, hasProps := obj.get("properties")
	props, _ := propsRaw.(*orderedObject)
	addl, hasAddl := obj.get("additionalProperties")
	patternRaw, hasPattern := obj.get("patternProperties")
	pattern, _ := patternRaw.(*orderedObject)

	addlIsSchema := hasAddl
	if b, ok := addl.(bool); ok {
		addlIsSchema = b // additionalProperties:false carries no schema
	}

	if hasProps && (addlIsSchema || hasPattern) {
		// Mixed properties + additionalProperties/patternProperties
		// degrades to opaque (spec §4.1, resolved in SPEC_FULL.md §4.4.1
		// via the conflict-propagation machinery in merge.go; here we
		// simply emit the terminal variant directly).
		return NewAtom(KindJSON), nil
	}

	if hasProps {
		return parsePropertiesObject(props, obj, path)
	}

	if addlIsSchema || hasPattern {
		return parseMapObject(addl, addlIsSchema, pattern, hasPattern, path)
	}

	// Bare {"type": "object"} with no properties/additionalProperties at
	// all: a Map over the opaque blob, the most permissive honest shape.
	return NewMap(NewAtom(KindJSON)), nil
}

func parsePropertiesObject(props *orderedObject, obj *orderedObject, path []string) (Schema, error) {
	o := NewObject()
	for _, name := range props.keys {
		fieldSchema, err := parseAt(props.values[name], append(path, name))
		if err != nil {
			return nil, err
		}
		o.SetField(name, fieldSchema)
	}
	if requiredRaw, ok := obj.get("required"); ok {
		for _, name := range stringSlice(requiredRaw) {
			o.MarkRequired(name)
		}
	}
	return o, nil
}

func parseMapObject(addl any, addlIsSchema bool, pattern *orderedObject, hasPattern bool, path []string) (Schema, error) {
	var valueSchemas []Schema

	if addlIsSchema {
		s, err := parseAt(addl, append(path, "additionalProperties"))
		if err != nil {
			return nil, err
		}
		valueSchemas = append(valueSchemas, s)
	}
	if hasPattern {
		for _, key := range pattern.keys {
			s, err := parseAt(pattern.values[key], append(path, "patternProperties", key))
			if err != nil {
				return nil, err
			}
			valueSchemas = append(valueSchemas, s)
		}
	}

	switch len(valueSchemas) {
	case 0:
		return NewMap(NewAtom(KindJSON)), nil
	case 1:
		return NewMap(valueSchemas[0]), nil
	default:
		// additionalProperties and one-or-more patternProperties value
		// schemas: fold them through Union so normalization merges them
		// the same way oneOf alternatives are merged.
		return NewMap(NewUnion(valueSchemas)), nil
	}
}

func parseArrayType(obj *orderedObject, path []string) (Schema, error) {
	items, ok := obj.get("items")
	if !ok {
		return NewArray(NewAtom(KindJSON)), nil
	}

	if list, ok := items.([]any); ok {
		schemas := make([]Schema, 0, len(list))
		for i, item := range list {
			s, err := parseAt(item, append(path, "items", fmt.Sprintf("%d", i)))
			if err != nil {
				return nil, err
			}
			schemas = append(schemas, s)
		}
		return NewTuple(schemas), nil
	}

	itemSchema, err := parseAt(items, append(path, "items"))
	if err != nil {
		return nil, err
	}
	return NewArray(itemSchema), nil
}

func stringSlice(value any) []string {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
