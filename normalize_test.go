package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, schema string) Schema {
	t.Helper()
	s, err := ParseBytes([]byte(schema))
	require.NoError(t, err, schema)
	return s
}

func TestNormalizeNullableUnionAbsorption(t *testing.T) {
	n := Normalize(mustParse(t, `{"type":["integer","null"]}`))
	atom, ok := n.(*Atom)
	require.True(t, ok)
	assert.Equal(t, KindInt, atom.Kind)
	assert.True(t, atom.Nullable)
}

func TestNormalizeEmptyNullableIsAtomNull(t *testing.T) {
	n := Normalize(mustParse(t, `{"type":["null"]}`))
	atom, ok := n.(*Atom)
	require.True(t, ok)
	assert.Equal(t, KindNull, atom.Kind)
	assert.True(t, atom.Nullable)
}

func TestNormalizeSingletonUnion(t *testing.T) {
	n := Normalize(mustParse(t, `{"oneOf":[{"type":"string"}]}`))
	atom, ok := n.(*Atom)
	require.True(t, ok)
	assert.Equal(t, KindString, atom.Kind)
	assert.False(t, atom.Nullable)
}

func TestNormalizeOneOfWithNullIsNullable(t *testing.T) {
	n := Normalize(mustParse(t, `{"oneOf":[{"type":"integer"},{"type":"null"}]}`))
	atom, ok := n.(*Atom)
	require.True(t, ok)
	assert.Equal(t, KindInt, atom.Kind)
	assert.True(t, atom.Nullable)
}

func TestNormalizeIncompatibleUnionIsJSON(t *testing.T) {
	n := Normalize(mustParse(t, `{"type":["boolean","integer"]}`))
	atom, ok := n.(*Atom)
	require.True(t, ok)
	assert.Equal(t, KindJSON, atom.Kind)
}

func TestNormalizeRequiredIdempotence(t *testing.T) {
	obj := NewObject()
	obj.SetField("a", NewAtom(KindInt))
	obj.MarkRequired("a")
	obj.MarkRequired("a")
	assert.Len(t, obj.Required, 1)
	assert.True(t, obj.IsRequired("a"))
}

func TestNormalizeAllOfRequiredOverlay(t *testing.T) {
	n := Normalize(mustParse(t, `{"allOf":[{"type":"object","properties":{"a":{"type":["integer","null"]},"c":{"type":"boolean"}}},{"required":["a","c"]}]}`))
	obj, ok := n.(*Object)
	require.True(t, ok)
	assert.True(t, obj.IsRequired("a"))
	assert.True(t, obj.IsRequired("c"))
}

func TestNormalizeHomogeneousTupleDemotesToArray(t *testing.T) {
	n := Normalize(mustParse(t, `{"type":"array","items":[{"type":"integer"},{"type":"integer"}]}`))
	_, ok := n.(*Array)
	assert.True(t, ok, "homogeneous tuple should demote to Array")
}

func TestNormalizeHeterogeneousTupleStaysTuple(t *testing.T) {
	n := Normalize(mustParse(t, `{"type":"array","items":[{"type":"integer"},{"type":"string"}]}`))
	_, ok := n.(*Tuple)
	assert.True(t, ok, "heterogeneous tuple should remain a Tuple")
}

func TestNormalizeNoUnionOrIntersectionRemains(t *testing.T) {
	n := Normalize(mustParse(t, `{"oneOf":[{"type":"object","properties":{"a":{"type":"integer"}}},{"allOf":[{"type":"object","properties":{"b":{"type":"string"}}}]}]}`))
	assertNoCombinators(t, n)
}

func assertNoCombinators(t *testing.T, s Schema) {
	t.Helper()
	switch v := s.(type) {
	case *Union, *Intersection:
		t.Fatalf("unexpected combinator node in normalized tree: %T", v)
	case *Object:
		for _, f := range v.Fields {
			assertNoCombinators(t, f)
		}
	case *Array:
		assertNoCombinators(t, v.Items)
	case *Map:
		assertNoCombinators(t, v.Value)
	case *Tuple:
		for _, item := range v.Items {
			assertNoCombinators(t, item)
		}
	}
}
