package planner

import (
	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/state"
)

// Solution is what FindPlan/FindAllPlans/FindNextPlan hand back to the
// caller on success (spec.md §6): the ordered ground operator heads
// (hidden operators excluded), the final RuleSet, and usage statistics.
type Solution struct {
	Plan              []*ast.Term
	FinalState        *state.RuleSet
	HighestMemoryUsed int64
	ElapsedSeconds    float64
}

// FailureReport is returned alongside a nil result and describes the
// "deepest failure" diagnostic of spec.md §4.6.4: the greatest stack depth
// at which a method/operator/condition failed to apply and, within that
// depth, the farthest position reached in the failing conjunction.
// FailureReport is kept whole here so the field list stays next to
// Solution's; see failure.go for how it's populated.
type FailureReport struct {
	DeepestDepth  int
	FurthestIndex int
	Context       []*ast.Term

	// Suggestion is the nearest known operator name to an
	// unrecognized primitive task, or "" if none was close enough to be
	// useful (SPEC_FULL.md Part C, the domain.SuggestOperatorName wiring).
	Suggestion string
}
