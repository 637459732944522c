// Package checks contains the detectors bundled with pathcheck.
//
// Each detector is an [engine.Check] that reports into the [Collector] of
// the member being explored:
//
//   - [NilDeref]: a field access, method call or pointer dereference whose
//     target is nil on the current path.
//   - [ConstCond]: a condition that evaluated the same way on every explored
//     path.
//   - [NilCheckFunc]: no findings of its own; it teaches the engine that
//     configured helpers such as util.IsNil(x) mean x == nil.
//
// Checks are created per member from an [Env] and are not reused.
package checks
