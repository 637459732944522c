// Package engine explores the exploded graph of a function body.
//
// # Overview
//
// The exploded graph pairs every program point (block, instruction offset)
// with the abstract program states that reach it. [Explorer.Walk] drives a
// FIFO worklist of such pairs:
//
//	(entry, 0, initial state)
//	    │
//	    ▼
//	instruction?  ── checks' PreProcessInstruction (nil prunes the path)
//	    │          ── transfer function (or a check's TryProcessInstruction)
//	    │          ── InstructionProcessed notification
//	    ▼
//	block end     ── Simple / Jump: follow the single successor
//	              ── BinaryBranch: pop the condition, TrySetConstraint(True)
//	              │   and TrySetConstraint(False), enqueue each feasible side
//	              ── Branch: enqueue every switch section
//	              ── Exit: the path terminates
//
// Before a state crosses into a new block, symbols that are not live on entry
// to that block are dropped, which keeps states small and lets paths merge.
//
// # Termination
//
// A node is dropped when the exact (point, state) pair was already processed
// or when the path has entered the target block as often as the visit cap
// allows. A capped path whose state was not yet seen at that block makes the
// walk end with [VisitLimit] instead of [Completed]. The walk stops with
// [StepLimit] once the step budget is spent. Cancellation of the context
// passed to Walk is checked once per worklist pop. These outcomes are not
// errors: [Result.Outcome] reports them, and [EndObserver] is only notified
// of a [Completed] walk.
//
// # Checks
//
// Detectors implement [Check] and may additionally implement
// [InstructionProcessor], [InstructionObserver], [ConditionObserver] or
// [EndObserver]. Observers added with [Explorer.AddCheck] or
// [Explorer.Subscribe] belong to one Explorer; nothing is global.
//
// # Faults
//
// An instruction without a transfer function, or a stack underflow, aborts
// the walk with a [*FaultError] wrapping [ErrEngineFault]. The fault is
// confined to the body being explored.
package engine
