package transpiler

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
)

// orderedObject is a JSON object decoded while preserving source key order.
// Go's map[string]any loses iteration order, but spec §4.6/§9 requires the
// Avro synthesizer to emit fields in source order, so parsing into a plain
// map is not sufficient — the input decode has to remember key order for
// the parser to hand it down to Object.Order (spec §3.1 "Object(fields,
// required)" carries no order of its own; ast.go's Object.Order is the
// mechanism, and this is what feeds it).
type orderedObject struct {
	keys   []string
	values map[string]any
}

func newOrderedObject() *orderedObject {
	return &orderedObject{values: make(map[string]any)}
}

func (o *orderedObject) set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *orderedObject) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// decodeOrdered decodes raw JSON text into a tree of *orderedObject (for
// objects), []any (for arrays), and plain scalars, using a token-level
// decode so object key order survives into the parser.
func decodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	value, err := decodeOrderedValue(dec)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func decodeOrderedValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, isDelim := tok.(json.Delim)
	if !isDelim {
		return tok, nil
	}

	switch delim {
	case json.Delim('{'):
		obj := newOrderedObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			val, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, val)
		}
		if _, err := dec.Token(); err != nil { // consume closing '}'
			return nil, err
		}
		return obj, nil

	case json.Delim('['):
		var arr []any
		for dec.More() {
			val, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // consume closing ']'
			return nil, err
		}
		return arr, nil

	default:
		return nil, io.ErrUnexpectedEOF
	}
}
