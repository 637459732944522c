package typeutil

import "go/types"

// IsNilable reports whether a value of type t can be nil.
func IsNilable(t types.Type) bool {
	if t == nil {
		return false
	}
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Map, *types.Slice, *types.Chan, *types.Signature, *types.Interface:
		return true
	case *types.Basic:
		return u.Kind() == types.UnsafePointer || u.Kind() == types.UntypedNil
	}

	return false
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t types.Type) bool {
	if t == nil {
		return false
	}
	_, ok := t.Underlying().(*types.Pointer)

	return ok
}

// IsInterface reports whether t is an interface type other than a type
// parameter constraint.
func IsInterface(t types.Type) bool {
	if t == nil {
		return false
	}
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}

	return types.IsInterface(t)
}

// IsBool reports whether t is a boolean type.
func IsBool(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Info()&types.IsBoolean != 0
}

// TypeName returns t qualified by package names only, as used in
// diagnostics and CFG dumps.
func TypeName(t types.Type) string {
	if t == nil {
		return "?"
	}

	return types.TypeString(t, (*types.Package).Name)
}
