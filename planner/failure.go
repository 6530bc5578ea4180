package planner

import "github.com/inductorhtn/htnplan/ast"

// RecordFailure implements spec.md §4.6.4: prefer the failure at the
// greatest stack depth; within the same depth, prefer the one with the
// larger furthestCriteriaFailureIndex. Called both when no method/operator
// at all applies to a task (index 0, context is just the task) and when a
// method's condition resolves to no bindings (index/context from the
// resolver's Outcome).
func (ps *PlanState) RecordFailure(depth, index int, context []*ast.Term) {
	ps.recordFailureWithSuggestion(depth, index, context, "")
}

// recordFailureWithSuggestion is RecordFailure plus an optional nearest-name
// suggestion for the unmatched task (only meaningful when context is a
// single unrecognized primitive task, spec.md §7.2).
func (ps *PlanState) recordFailureWithSuggestion(depth, index int, context []*ast.Term, suggestion string) {
	if depth > ps.deepestFailDepth || (depth == ps.deepestFailDepth && index > ps.deepestFailIndex) {
		ps.deepestFailDepth = depth
		ps.deepestFailIndex = index
		ps.deepestFailContext = context
		ps.deepestFailSuggestion = suggestion
	}
}

func (ps *PlanState) failureReport() *FailureReport {
	return &FailureReport{
		DeepestDepth:  ps.deepestFailDepth,
		FurthestIndex: ps.deepestFailIndex,
		Context:       ps.deepestFailContext,
		Suggestion:    ps.deepestFailSuggestion,
	}
}
