package planner

import "fmt"

// Code classifies a planner-level error, grounded on the teacher's
// topdown.Error shape (Code + Message) but with the planner's own taxonomy
// from spec.md §7: out-of-memory and abort are normal, reportable
// outcomes, while InvariantViolation denotes a bug.
type Code int

const (
	// OutOfMemory means the memory budget was exhausted during search.
	OutOfMemory Code = iota
	// Aborted means the caller's abort flag was observed set.
	Aborted
	// InvariantViolation means an internal invariant was violated: an
	// unknown continuation tag, a commit of an unread reader position, or
	// similar. spec.md §7.5 says these are bugs and should fail fast; a
	// library cannot kill its host process, so this package panics
	// internally and FindNextPlan recovers it into this error code.
	InvariantViolation
)

func (c Code) String() string {
	switch c {
	case OutOfMemory:
		return "out of memory"
	case Aborted:
		return "aborted"
	case InvariantViolation:
		return "invariant violation"
	default:
		return "unknown"
	}
}

// Error is returned by FindPlan/FindAllPlans/FindNextPlan for the
// non-exception outcomes of spec.md §7 (3)-(5).
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("planner error (%s): %s", e.Code, e.Message)
}

func invariantViolation(format string, a ...any) {
	panic(&Error{Code: InvariantViolation, Message: fmt.Sprintf(format, a...)})
}
