package engine

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mpyw/pathcheck/internal/syntax"
)

// ErrEngineFault is matched by every *FaultError.
var ErrEngineFault = errors.New("engine fault")

// FaultError reports an implementation gap hit while exploring one body: an
// instruction without a transfer function, a stack underflow, or a panic in
// a check.
type FaultError struct {
	Point       ProgramPoint
	Instruction syntax.Node
	Err         error
}

func (e *FaultError) Error() string {
	if e.Instruction == nil {
		return fmt.Sprintf("engine fault at %s: %v", e.Point, e.Err)
	}
	return fmt.Sprintf("engine fault at %s (%s): %v", e.Point, syntax.String(e.Instruction), e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrEngineFault) hold.
func (e *FaultError) Is(target error) bool { return target == ErrEngineFault }

// Outcome tells how a walk ended.
type Outcome int

const (
	// Completed means the worklist was exhausted.
	Completed Outcome = iota
	// StepLimit means the step cap stopped the walk.
	StepLimit
	// Cancelled means the context was done.
	Cancelled
	// VisitLimit means the worklist was exhausted but the per-path block
	// visit cap dropped at least one path that was not already explored.
	VisitLimit
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case StepLimit:
		return "step_limit"
	case Cancelled:
		return "cancelled"
	case VisitLimit:
		return "visit_limit"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result summarizes a walk.
type Result struct {
	Steps   int
	Outcome Outcome
}
