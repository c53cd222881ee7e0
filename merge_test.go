package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeNumericWidening(t *testing.T) {
	m := Merge(NewAtom(KindInt), NewAtom(KindFloat))
	atom, ok := m.(*Atom)
	assert.True(t, ok)
	assert.Equal(t, KindFloat, atom.Kind)
}

func TestMergeSameAtomKind(t *testing.T) {
	m := Merge(NewAtom(KindString), NewAtom(KindString))
	atom, ok := m.(*Atom)
	assert.True(t, ok)
	assert.Equal(t, KindString, atom.Kind)
}

func TestMergeIncompatibleAtomsIsJSON(t *testing.T) {
	m := Merge(NewAtom(KindBool), NewAtom(KindString))
	atom, ok := m.(*Atom)
	assert.True(t, ok)
	assert.Equal(t, KindJSON, atom.Kind)
}

func TestMergeJSONIsAbsorbing(t *testing.T) {
	for _, s := range []Schema{
		NewAtom(KindInt),
		NewObject(),
		NewArray(NewAtom(KindString)),
		NewMap(NewAtom(KindBool)),
	} {
		m := Merge(NewAtom(KindJSON), s)
		atom, ok := m.(*Atom)
		assert.True(t, ok)
		assert.Equal(t, KindJSON, atom.Kind)
	}
}

func TestMergeCommutativity(t *testing.T) {
	a := objectWithField("x", NewAtom(KindInt))
	b := objectWithField("y", NewAtom(KindBool))

	ab := Merge(a, b).(*Object)
	ba := Merge(b, a).(*Object)

	assert.ElementsMatch(t, keys(ab.Fields), keys(ba.Fields))
}

func TestMergeObjectUnionOfFields(t *testing.T) {
	a := objectWithField("a", NewAtom(KindInt))
	b := objectWithField("b", NewAtom(KindBool))

	merged := Merge(a, b).(*Object)
	assert.Contains(t, merged.Fields, "a")
	assert.Contains(t, merged.Fields, "b")
	assert.True(t, merged.Fields["a"].IsNullable(), "field missing from the other alternative becomes nullable")
	assert.True(t, merged.Fields["b"].IsNullable())
}

func TestMergeObjectRequiredIntersection(t *testing.T) {
	a := NewObject()
	a.SetField("a", NewAtom(KindInt))
	a.MarkRequired("a")

	b := NewObject()
	b.SetField("a", NewAtom(KindInt))
	// "a" not required in b

	merged := Merge(a, b).(*Object)
	assert.False(t, merged.IsRequired("a"), "required must be the intersection across alternatives")
}

func TestMergeArrayConflictPropagates(t *testing.T) {
	a := NewArray(objectWithField("x", NewAtom(KindString)))
	b := NewArray(objectWithField("x", NewAtom(KindBool)))

	merged := Merge(a, b)
	atom, ok := merged.(*Atom)
	assert.True(t, ok, "a conflict nested inside an Array must collapse the whole merge to Atom(Json)")
	assert.Equal(t, KindJSON, atom.Kind)
}

func TestMergeNestedObjectConflictPropagatesToRoot(t *testing.T) {
	a := NewObject()
	a.SetField("outer", objectWithField("inner", objectWithField("field_1", NewAtom(KindString))))

	b := NewObject()
	b.SetField("outer", objectWithField("inner", objectWithField("field_1", NewAtom(KindBool))))

	merged := Merge(a, b)
	atom, ok := merged.(*Atom)
	assert.True(t, ok, "a conflict at a node invalidates the entire tree")
	assert.Equal(t, KindJSON, atom.Kind)
}

func objectWithField(name string, s Schema) *Object {
	o := NewObject()
	o.SetField(name, s)
	return o
}

func keys(m map[string]Schema) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
