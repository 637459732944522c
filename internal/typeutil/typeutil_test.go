package typeutil_test

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpyw/pathcheck/internal/typeutil"
)

func TestIsNilable(t *testing.T) {
	pkg := types.NewPackage("example.com/p", "p")
	named := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "T", nil), types.NewStruct(nil, nil), nil)
	tparam := types.NewTypeParam(types.NewTypeName(token.NoPos, pkg, "E", nil), types.NewInterfaceType(nil, nil))

	tests := []struct {
		name string
		typ  types.Type
		want bool
	}{
		{"pointer", types.NewPointer(named), true},
		{"map", types.NewMap(types.Typ[types.String], types.Typ[types.Int]), true},
		{"slice", types.NewSlice(types.Typ[types.Int]), true},
		{"chan", types.NewChan(types.SendRecv, types.Typ[types.Int]), true},
		{"func", types.NewSignatureType(nil, nil, nil, nil, nil, false), true},
		{"error", types.Universe.Lookup("error").Type(), true},
		{"unsafe pointer", types.Typ[types.UnsafePointer], true},
		{"untyped nil", types.Typ[types.UntypedNil], true},
		{"int", types.Typ[types.Int], false},
		{"struct", named, false},
		{"type parameter", tparam, false},
		{"unknown", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typeutil.IsNilable(tt.typ))
		})
	}
}

func TestPredicates(t *testing.T) {
	pkg := types.NewPackage("example.com/p", "p")
	named := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "T", nil), types.NewStruct(nil, nil), nil)

	assert.True(t, typeutil.IsPointer(types.NewPointer(named)))
	assert.False(t, typeutil.IsPointer(named))
	assert.True(t, typeutil.IsInterface(types.Universe.Lookup("error").Type()))
	assert.False(t, typeutil.IsInterface(named))
	assert.True(t, typeutil.IsBool(types.Typ[types.UntypedBool]))
	assert.False(t, typeutil.IsBool(types.Typ[types.Int]))
	assert.Equal(t, "*p.T", typeutil.TypeName(types.NewPointer(named)))
}
