package transpiler

// AtomKind enumerates the scalar types an Atom schema can carry.
type AtomKind int

const (
	// KindInt is a JSON Schema "integer".
	KindInt AtomKind = iota
	// KindFloat is a JSON Schema "number" (and the widened result of
	// merging an Int with a Float).
	KindFloat
	// KindBool is a JSON Schema "boolean".
	KindBool
	// KindString is a JSON Schema "string".
	KindString
	// KindNull only ever appears transiently inside a Union's
	// alternatives; normalization absorbs it into the parent's
	// nullability and it never reaches a synthesizer on its own, except
	// as the degenerate "empty nullable" case described in spec §3.1.
	KindNull
	// KindJSON is the opaque blob fallback emitted when a merge cannot
	// reconcile two schemas without losing information.
	KindJSON
)

func (k AtomKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNull:
		return "null"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Schema is the closed tagged-variant AST every pass in this package
// operates on. Every value is one of *Atom, *Object, *Map, *Array, *Union,
// *Intersection or *Tuple; passes switch on that dynamic type.
type Schema interface {
	// schemaNode is a marker method closing the Schema variant set to the
	// types defined in this file.
	schemaNode()
	// IsNullable reports whether this schema accepts JSON null in
	// addition to its own values.
	IsNullable() bool
}

// base carries the nullable attribute common to every variant (spec §3.1).
type base struct {
	Nullable bool
}

func (base) schemaNode() {}
func (b base) IsNullable() bool { return b.Nullable }

// Atom is a scalar leaf schema.
type Atom struct {
	base
	Kind AtomKind
}

// NewAtom builds a non-nullable Atom of the given kind.
func NewAtom(kind AtomKind) *Atom {
	return &Atom{Kind: kind}
}

// WithNullable returns a copy of the atom with Nullable set.
func (a *Atom) WithNullable(nullable bool) *Atom {
	cp := *a
	cp.Nullable = nullable
	return &cp
}

// Object is a JSON Schema "object" with an explicit, named `properties` set.
// It is produced only when the source has `properties`; see Map for the
// `additionalProperties`/`patternProperties` case (spec §3.1, §4.1).
type Object struct {
	base
	// Fields maps property name to its schema. Names are unique by
	// construction (a JSON object cannot repeat a key).
	Fields map[string]Schema
	// Required is the set of property names that must be present. It is
	// always a subset of the keys of Fields (spec §3.1 invariant).
	Required map[string]struct{}
	// Order preserves the source property iteration order, needed by the
	// Avro synthesizer (spec §4.6: "fields are emitted in source order").
	Order []string
}

// NewObject builds an empty Object ready to have fields appended via
// SetField, preserving insertion order in Order.
func NewObject() *Object {
	return &Object{
		Fields:   make(map[string]Schema),
		Required: make(map[string]struct{}),
	}
}

// SetField adds or replaces a field, tracking first-seen order.
func (o *Object) SetField(name string, s Schema) {
	if _, exists := o.Fields[name]; !exists {
		o.Order = append(o.Order, name)
	}
	o.Fields[name] = s
}

// MarkRequired adds name to the required set. Calling it twice for the same
// name has no additional effect (spec §8.1 "required idempotence").
func (o *Object) MarkRequired(name string) {
	o.Required[name] = struct{}{}
}

// IsRequired reports whether name is in the required set.
func (o *Object) IsRequired(name string) bool {
	_, ok := o.Required[name]
	return ok
}

// Map is a JSON Schema "object" with a single, unnamed value schema shared
// by all (unknown, arbitrarily many) keys — produced from
// `additionalProperties`/`patternProperties` when `properties` is absent
// (spec §3.1, §4.1, §9 "map detection").
type Map struct {
	base
	Value Schema
}

// NewMap builds a Map over the given common value schema.
func NewMap(value Schema) *Map {
	return &Map{Value: value}
}

// Array is a homogeneous JSON Schema "array" (`items` is a single schema).
type Array struct {
	base
	Items Schema
}

// NewArray builds an Array over the given item schema.
func NewArray(items Schema) *Array {
	return &Array{Items: items}
}

// Tuple is a heterogeneous JSON Schema "array" (`items` is an array of
// schemas, one per position). Normalization demotes a Tuple whose item
// schemas are all structurally equal to an Array (spec §4.2 rule 6);
// synthesizers merge the remaining item schemas into one element type
// (spec §9 "tuple vs array").
type Tuple struct {
	base
	Items []Schema
}

// NewTuple builds a Tuple over the given ordered item schemas.
func NewTuple(items []Schema) *Tuple {
	return &Tuple{Items: items}
}

// Union represents `oneOf`/`anyOf` and a `type: [...]` array. A `"null"`
// entry stays in Alts as an Atom(Null) until normalization absorbs it into
// nullability. It exists only before normalization; normalize.go folds
// every Union away (spec §3.1 invariant).
type Union struct {
	base
	Alts []Schema
}

// NewUnion builds a Union over the given ordered alternatives.
func NewUnion(alts []Schema) *Union {
	return &Union{Alts: alts}
}

// Intersection represents `allOf`. Like Union, it exists only before
// normalization.
type Intersection struct {
	base
	Alts []Schema
}

// NewIntersection builds an Intersection over the given ordered alternatives.
func NewIntersection(alts []Schema) *Intersection {
	return &Intersection{Alts: alts}
}

var (
	_ Schema = (*Atom)(nil)
	_ Schema = (*Object)(nil)
	_ Schema = (*Map)(nil)
	_ Schema = (*Array)(nil)
	_ Schema = (*Tuple)(nil)
	_ Schema = (*Union)(nil)
	_ Schema = (*Intersection)(nil)
)
