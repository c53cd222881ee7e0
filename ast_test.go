package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectSetFieldTracksOrderOnce(t *testing.T) {
	o := NewObject()
	o.SetField("a", NewAtom(KindInt))
	o.SetField("b", NewAtom(KindString))
	o.SetField("a", NewAtom(KindFloat)) // replace, should not duplicate order entry

	assert.Equal(t, []string{"a", "b"}, o.Order)
	assert.Equal(t, KindFloat, o.Fields["a"].(*Atom).Kind)
}

func TestAtomWithNullableIsACopy(t *testing.T) {
	a := NewAtom(KindInt)
	b := a.WithNullable(true)

	assert.False(t, a.Nullable)
	assert.True(t, b.Nullable)
}

func TestObjectRequiredIsSubsetOfFields(t *testing.T) {
	o := NewObject()
	o.SetField("a", NewAtom(KindInt))
	o.MarkRequired("a")
	o.MarkRequired("a") // idempotent

	assert.True(t, o.IsRequired("a"))
	assert.False(t, o.IsRequired("b"))
}
