// Package cfg builds control flow graphs from syntax bodies.
//
// # Block Model
//
// A [Graph] is made of [Block] values. Each block holds the instructions it
// evaluates, in evaluation order, and an ordered list of successors:
//
//	┌──────────────────────────┬───────────────────────────────────────────┐
//	│ Kind                     │ Successors                                │
//	├──────────────────────────┼───────────────────────────────────────────┤
//	│ Simple                   │ [next]                                    │
//	│ BinaryBranch             │ [true, false] (see below for ?? and ?.)   │
//	│ Jump                     │ [target]                                  │
//	│ Branch                   │ [case sections..., default or after]      │
//	│ ForeachCollectionProducer│ [foreach branch]                          │
//	│ Exit                     │ none                                      │
//	└──────────────────────────┴───────────────────────────────────────────┘
//
// For a BinaryBranch the BranchingNode tells what decides it:
//
//	*syntax.If, *While, *Do, *For, *Conditional  [cond true, cond false]
//	*syntax.Binary (&&, ||)                      [left true, left false]
//	*syntax.Coalesce                             [left is null, left is not null]
//	*syntax.ConditionalAccess                    [target is null, target is not null]
//	*syntax.ForEach                              [next element, done]
//	any other expression (switch case condition) [true, false]
//
// # Construction
//
// [Build] walks the body in reverse, prepending instructions to the current
// block until a branching or jumping construct seals it. Blocks live in an
// arena addressed by integer ids; targets that are not known yet (loop heads,
// goto labels, continue, goto case, fallthrough) are recorded as label
// references and resolved in a second pass. Empty plain blocks are bypassed
// at the end, so
//
//	if (true) { x = 1; }
//
// yields exactly three blocks: the entry branch ["true"], the true block
// ["1", "x = 1"] and the exit.
package cfg
