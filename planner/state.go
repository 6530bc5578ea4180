package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/domain"
	"github.com/inductorhtn/htnplan/internal/logging"
	"github.com/inductorhtn/htnplan/internal/metrics"
	"github.com/inductorhtn/htnplan/state"
)

// PlanState owns the explicit search stack and the global search
// statistics (spec.md §3). It is restartable: FindNextPlan may be called
// repeatedly against the same PlanState to enumerate further solutions
// until it is exhausted.
type PlanState struct {
	factory *ast.TermFactory
	domain  *domain.Domain
	base    *state.RuleSet // the locked base shared by every frame
	budget  int64
	abort   *AbortFlag

	searchID uuid.UUID

	top        *PlanNode
	nextNodeID int

	pendingSuccess bool // last FindNextPlan call returned a success without popping
	exhausted      bool

	highestMemoryUsed int64

	deepestFailDepth      int
	deepestFailIndex      int
	deepestFailContext    []*ast.Term
	deepestFailSuggestion string

	startTime time.Time
	log       logging.Logger
	metrics   *metrics.Collector
}

// newPlanState constructs the root frame from the initial tasks and locks
// the caller's RuleSet as the shared base (spec.md §4.5: the base is
// "installed once by the loader, never mutated after the first search
// frame captures it").
func newPlanState(factory *ast.TermFactory, dom *domain.Domain, initial *state.RuleSet, goals []*ast.Term, budget int64, abort *AbortFlag, log logging.Logger, mcs *metrics.Collector) *PlanState {
	initial.Lock()
	ps := &PlanState{
		factory:          factory,
		domain:           dom,
		base:             initial,
		budget:           budget,
		abort:            abort,
		searchID:         uuid.New(),
		deepestFailDepth: -1,
		startTime:        time.Now(),
		log:              log,
		metrics:          mcs,
	}
	logging.Debugf(log, map[string]any{"searchID": ps.searchID, "goals": len(goals), "budget": budget}, "starting search")
	root := &PlanNode{tag: NextTask, tasks: goals, state: initial.CreateCopy()}
	ps.push(root)
	return ps
}

// push installs n as the new top of the stack, assigns its monotonic ID
// and depth, and performs the §4.6.5 memory accounting: the node's size at
// push time is recorded, the running high-water mark is updated, and the
// node is immediately flagged OutOfMemory if installing it would exceed
// the budget.
func (ps *PlanState) push(n *PlanNode) {
	n.id = ps.nextNodeID
	ps.nextNodeID++
	n.parent = ps.top
	if ps.top != nil {
		ps.top.child = n
		n.depth = ps.top.depth + 1
	}
	ps.top = n
	n.sizeAtPush = ps.dynamicSize()
	if n.sizeAtPush > ps.highestMemoryUsed {
		ps.highestMemoryUsed = n.sizeAtPush
	}
	ps.metrics.IncNodesPushed()
	ps.metrics.SetBytesAllocated(n.sizeAtPush)
	logging.Debugf(ps.log, map[string]any{"node": n.id, "depth": n.depth, "size": n.sizeAtPush}, "push node")
	if ps.budget > 0 && n.sizeAtPush >= ps.budget {
		logging.Warnf(ps.log, map[string]any{"node": n.id, "size": n.sizeAtPush, "budget": ps.budget}, "memory budget exhausted")
		n.tag = OutOfMemoryTag
	}
}

// doReturn pops the current top and delivers value to its parent as
// returnValue, ready for the parent's ReturnFromX tag to consume on the
// next loop iteration. Popping past the root frame marks the whole search
// exhausted; value is then not recorded anywhere.
func (ps *PlanState) doReturn(value bool) {
	finished := ps.top
	ps.top = finished.parent
	if ps.top == nil {
		ps.exhausted = true
		return
	}
	ps.top.child = nil
	ps.top.returnValue = value
}

// dynamicSize is the live total against which the budget is checked:
// every stacked node's own contribution, the shared locked base counted
// once, and the term factory's storage (spec.md §4.6.5).
func (ps *PlanState) dynamicSize() int64 {
	total := ps.factory.DynamicSize()
	if ps.base != nil {
		total += ps.base.DynamicSharedSize()
	}
	total += int64(len(ps.deepestFailContext)) * 8
	for n := ps.top; n != nil; n = n.parent {
		total += n.dynamicSize()
	}
	return total
}

func newNodeWithCopy(parent *PlanNode, tasks []*ast.Term) *PlanNode {
	return &PlanNode{tag: NextTask, tasks: tasks, ops: parent.ops, state: parent.state.CreateCopy()}
}

func ancestorByID(n *PlanNode, id int) *PlanNode {
	for a := n; a != nil; a = a.parent {
		if a.id == id {
			return a
		}
	}
	return nil
}

func (ps *PlanState) buildSolution(n *PlanNode) *Solution {
	elapsed := time.Since(ps.startTime).Seconds()
	ps.metrics.IncPlansFound()
	ps.metrics.ObserveSearchSeconds(elapsed)
	return &Solution{
		Plan:              n.ops.slice(),
		FinalState:        n.state,
		HighestMemoryUsed: ps.highestMemoryUsed,
		ElapsedSeconds:    elapsed,
	}
}
