// Package typeutil answers the static type questions the Go front-end asks.
//
// # Nilability
//
// [IsNilable] reports whether a value of a type can be nil, which decides
// between reference and value equality for == and != and whether a zero
// value declaration starts out nil:
//
//	IsNilable(*T)             // true
//	IsNilable(map[K]V)        // true
//	IsNilable([]T)            // true
//	IsNilable(chan T)         // true
//	IsNilable(func())         // true
//	IsNilable(error)          // true (interface)
//	IsNilable(unsafe.Pointer) // true
//	IsNilable(int)            // false
//	IsNilable(T) // T a type parameter: false
//
// Type parameters are treated as non-nilable: their type set may admit
// nil, but nothing can be proven about a particular instantiation.
//
// # Dereferences
//
// [IsPointer] and [IsInterface] decide whether a selector dereferences its
// operand:
//
//	p.f        // p *T: dereference of p
//	v.f        // v T:  no dereference
//	i.M()      // i interface: dereference of i
//	p.M()      // M has a pointer receiver: nil-safe
//	p.V()      // V has a value receiver: dereference of p
package typeutil
