// Package funcspec parses and matches function names given on the command
// line or in the config file.
//
// # Specification Format
//
//	pkg/path.FuncName           # Package-level function
//	pkg/path.TypeName.Method    # Method on type
//
// Examples:
//
//	example.com/util.IsNil
//	github.com/stretchr/testify/assert.Nil
//	example.com/store.Handle.IsZero
//
// A segment starting with an upper-case letter before the last dot is taken
// as the receiver type name.
//
// # Parsing
//
//	spec := funcspec.Parse("example.com/store.Handle.IsZero")
//	// spec.PkgPath  = "example.com/store"
//	// spec.TypeName = "Handle"
//	// spec.FuncName = "IsZero"
//
//	specs := funcspec.ParseList("example.com/util.IsNil, example.com/util.IsEmpty")
//
// [Spec.FullName] returns the source format again, for logs and messages.
//
// # Matching
//
// [ExtractFunc] resolves the static callee of a call expression and
// [Spec.Matches] compares it with a specification:
//
//	fn := funcspec.ExtractFunc(info, call)
//	if fn != nil && spec.Matches(fn) {
//	    // call invokes the configured helper
//	}
//
// Methods match with either a value or a pointer receiver. Calls through
// function values have no static callee and never match.
package funcspec
