// Package internal holds the path-sensitive analysis behind pathcheck.
//
// # Architecture Overview
//
// Each function body is analyzed on its own, as one member:
//
//	                            +------------------+
//	                            |   analyzer.go    |  Entry point
//	                            +--------+---------+
//	                                     |
//	                            +--------v---------+
//	                            |      runner      |  Members, workers, spans
//	                            +--------+---------+
//	                                     |
//	        +-----------+----------------+---------------+
//	        |           |                |               |
//	  +-----v----+ +----v-----+   +------v------+  +-----v------+
//	  | gosyntax | |   cfg    |-->|  liveness   |  |  registry  |
//	  | (lower)  | | (graph)  |   | (live-in)   |  |  (checks)  |
//	  +----------+ +----+-----+   +------+------+  +-----+------+
//	                    |                |               |
//	                    +--------+-------+---------------+
//	                             |
//	                    +--------v---------+
//	                    |      engine      |  Exploded graph walk
//	                    +--------+---------+
//	                             |
//	                    +--------v---------+
//	                    |     symbolic     |  States, values, constraints
//	                    +------------------+
//
// # Execution Flow
//
//  1. [runner.Members] lists every function declaration and literal
//  2. [gosyntax.Lower] converts the body into the [syntax] model
//  3. [cfg.Build] builds the control flow graph, in reverse statement order
//  4. [liveness.Analyze] computes the live-in symbols of every block
//  5. [engine.Explorer.Walk] explores the graph with the enabled [checks]
//  6. Findings are filtered through //pathcheck:ignore directives and reported
//
// # Checks
//
// Checks implement [engine.Check] and may observe instructions, conditions
// and the end of exploration:
//
//   - nilderef: dereference of a value that is nil on the current path
//   - constcond: condition that only ever took one value (off by default)
//   - nilcheckfunc: helpers such as isNil(x) explored as x == nil
//
// A fault in one member (an instruction without semantics, a panic in a
// check) aborts that member only.
package internal
