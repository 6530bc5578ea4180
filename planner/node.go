package planner

import (
	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/domain"
	"github.com/inductorhtn/htnplan/state"
	"github.com/inductorhtn/htnplan/unify"
)

// Tag is a PlanNode's continuation: where the scheduler resumes when it
// next visits this frame. spec.md §4.6.1 specifies this exact set; a tag
// outside this set reaching the dispatch loop is an invariant violation.
type Tag int

const (
	Fail Tag = iota
	NextTask
	ReturnFromCheckForOperator
	NextMethodThatApplies
	NextNormalMethodCondition
	ReturnFromNextNormalMethodCondition
	ReturnFromHandleTryTerm
	ReturnFromSetOfConditions
	OutOfMemoryTag
	AbortTag
)

func (t Tag) String() string {
	switch t {
	case Fail:
		return "Fail"
	case NextTask:
		return "NextTask"
	case ReturnFromCheckForOperator:
		return "ReturnFromCheckForOperator"
	case NextMethodThatApplies:
		return "NextMethodThatApplies"
	case NextNormalMethodCondition:
		return "NextNormalMethodCondition"
	case ReturnFromNextNormalMethodCondition:
		return "ReturnFromNextNormalMethodCondition"
	case ReturnFromHandleTryTerm:
		return "ReturnFromHandleTryTerm"
	case ReturnFromSetOfConditions:
		return "ReturnFromSetOfConditions"
	case OutOfMemoryTag:
		return "OutOfMemory"
	case AbortTag:
		return "Abort"
	default:
		return "unknown"
	}
}

// nodeHeaderBytes approximates a PlanNode's own struct overhead (pointers,
// slice headers, counters) independent of what it references, for the
// §4.6.5 dynamicSize accounting.
const nodeHeaderBytes = 200

// PlanNode is one frame of the explicit search stack (spec.md §3,
// "PlanNode / PlanState"). There is deliberately one struct for every
// continuation rather than a family of frame types: every frame carries
// the same fields, differing only in which ones are meaningful at its
// current tag, which is exactly the shape spec.md §9 recommends
// ("tagged-variant frame rather than polymorphism").
type PlanNode struct {
	id    int
	depth int
	tag   Tag
	state *state.RuleSet

	tasks []*ast.Term // remaining task list, to be consumed left to right
	ops   *opList     // accumulated ground operator heads

	parent      *PlanNode
	child       *PlanNode
	returnValue bool

	// current task/method bookkeeping
	task            *ast.Term
	candidateTask   *ast.Term // the task whose methods are candidates
	methods         []*domain.Method
	methodIdx       int
	method          *domain.Method
	resolutions     []*unify.Unifier
	resolutionIdx   int
	headUnifier     *unify.Unifier

	// try/anyOf bookkeeping, keyed by the owning ancestor's id
	retry                       bool
	tryAnyOfSuccessCount        int
	methodHadSolution           bool
	atLeastOneMethodHadSolution bool

	// Per-node failure fields; the planner does not write them. §4.6.4
	// deepest-failure tracking is kept on PlanState (see failure.go).
	furthestFailIndex int
	furthestFailGoals []*ast.Term

	sizeAtPush int64
}

// dynamicSize approximates this frame's own live contribution to the
// memory budget: its task/op lists, any retained method-candidate and
// resolution lists, and its state delta (the shared base is counted once
// by PlanState, not per node).
func (n *PlanNode) dynamicSize() int64 {
	total := int64(nodeHeaderBytes)
	total += int64(len(n.tasks)) * 8
	total += int64(n.ops.len()) * 16
	total += int64(len(n.methods)) * 8
	total += int64(len(n.resolutions)) * unifierOverheadBytesApprox
	if n.state != nil {
		total += n.state.DynamicSize()
	}
	return total
}

// unifierOverheadBytesApprox mirrors resolve's own per-unifier overhead
// constant; kept as a separate local constant rather than importing
// resolve's unexported one, since this is an estimate for bookkeeping, not
// a shared contract.
const unifierOverheadBytesApprox = 96
