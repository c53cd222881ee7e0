package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBigQueryAtomTypes(t *testing.T) {
	tests := map[AtomKind]BqType{
		KindInt:    BqTypeInteger,
		KindFloat:  BqTypeFloat,
		KindBool:   BqTypeBoolean,
		KindString: BqTypeString,
		KindJSON:   BqTypeString,
	}
	for kind, want := range tests {
		f := ToBigQuery(NewAtom(kind))
		assert.Equal(t, want, f.Type)
	}
}

func TestBigQueryTopLevelModeIsAlwaysRequired(t *testing.T) {
	f := ToBigQuery(NewAtom(KindInt).WithNullable(true))
	assert.Equal(t, BqModeRequired, f.Mode)
}

func TestBigQueryFieldsSortedByName(t *testing.T) {
	obj := NewObject()
	obj.SetField("z", NewAtom(KindString))
	obj.SetField("a", NewAtom(KindInt))

	f := ToBigQuery(obj)
	require := assert.New(t)
	require.Len(f.Fields, 2)
	require.Equal("a", f.Fields[0].Name)
	require.Equal("z", f.Fields[1].Name)
}

func TestBigQueryArrayIsRepeated(t *testing.T) {
	f := ToBigQuery(NewArray(NewAtom(KindInt).WithNullable(true)))
	assert.Equal(t, BqModeRepeated, f.Mode)
}

func TestBigQueryMapShape(t *testing.T) {
	f := ToBigQuery(NewMap(NewAtom(KindInt)))
	assert.Equal(t, BqTypeRecord, f.Type)
	assert.Equal(t, BqModeRepeated, f.Mode)
	assert.Len(t, f.Fields, 2)
	assert.Equal(t, "key", f.Fields[0].Name)
	assert.Equal(t, BqTypeString, f.Fields[0].Type)
	assert.Equal(t, BqModeRequired, f.Fields[0].Mode)
	assert.Equal(t, "value", f.Fields[1].Name)
	assert.Equal(t, BqModeRequired, f.Fields[1].Mode)
}

func TestBigQueryFieldModeRules(t *testing.T) {
	obj := NewObject()
	obj.SetField("required_field", NewAtom(KindInt))
	obj.MarkRequired("required_field")
	obj.SetField("optional_field", NewAtom(KindString))
	obj.SetField("nullable_required_field", NewAtom(KindInt).WithNullable(true))
	obj.MarkRequired("nullable_required_field")

	f := ToBigQuery(obj)
	byName := map[string]*BqField{}
	for _, field := range f.Fields {
		byName[field.Name] = field
	}

	assert.Equal(t, BqModeRequired, byName["required_field"].Mode)
	assert.Equal(t, BqModeNullable, byName["optional_field"].Mode)
	assert.Equal(t, BqModeNullable, byName["nullable_required_field"].Mode, "required does not override nullability")
}

func TestBigQueryTupleMergesIntoArray(t *testing.T) {
	tuple := NewTuple([]Schema{NewAtom(KindInt), NewAtom(KindFloat)})
	f := ToBigQuery(tuple)
	assert.Equal(t, BqModeRepeated, f.Mode)
	assert.Equal(t, BqTypeFloat, f.Type)
}
