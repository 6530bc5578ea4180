// Package planner implements the HTN search of spec.md §4.6: an
// explicit, heap-allocated stack of PlanNode frames driven by a single
// dispatch loop over each frame's continuation Tag. There is no
// language-level recursion in the search itself, so a pathological domain
// can exhaust the memory budget but can never overflow the Go stack.
package planner

import (
	"math"

	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/domain"
	"github.com/inductorhtn/htnplan/internal/logging"
	"github.com/inductorhtn/htnplan/internal/metrics"
	"github.com/inductorhtn/htnplan/resolve"
	"github.com/inductorhtn/htnplan/state"
	"github.com/inductorhtn/htnplan/unify"
)

// Planner runs HTN searches. It holds no per-search state itself; all
// mutable search state lives in the PlanState returned by each call, so
// a single Planner value may drive many independent, possibly concurrent
// searches (each with its own PlanState and TermFactory). Log and Metrics
// are nil by default (library use, spec.md treats logging/tracing sinks
// as an external collaborator) — set them to observe search progress per
// SPEC_FULL.md B1/Part C.
type Planner struct {
	Log     logging.Logger
	Metrics *metrics.Collector
}

// NewPlanner returns a ready-to-use Planner with no logger or metrics
// collector attached.
func NewPlanner() *Planner {
	return &Planner{}
}

// NewSearch starts a restartable search and returns its PlanState, ready
// for FindNextPlan. Use this directly when FindAllPlans's own enumeration
// loop isn't a fit, e.g. to interleave search steps with a caller-driven
// wall-clock timeout (spec.md §5, "Timeouts").
func (p *Planner) NewSearch(factory *ast.TermFactory, dom *domain.Domain, initial *state.RuleSet, goals []*ast.Term, budget int64, abort *AbortFlag) *PlanState {
	if abort == nil {
		abort = NewAbortFlag()
	}
	return newPlanState(factory, dom, initial, goals, budget, abort, p.Log, p.Metrics)
}

// FindPlan returns the first solution, or nil if the conjunction of goals
// is unsatisfiable within budget (spec.md §6).
func (p *Planner) FindPlan(factory *ast.TermFactory, dom *domain.Domain, initial *state.RuleSet, goals []*ast.Term, budget int64) (*Solution, *FailureReport, error) {
	logging.Infof(p.Log, map[string]any{"goals": len(goals)}, "FindPlan start")
	ps := p.NewSearch(factory, dom, initial, goals, budget, nil)
	sol, err := p.FindNextPlan(ps)
	logging.Infof(p.Log, map[string]any{"found": sol != nil, "err": err}, "FindPlan done")
	if sol == nil {
		return nil, ps.failureReport(), err
	}
	return sol, nil, err
}

// FindAllPlans enumerates every solution up to maxSolutions (0 means
// unbounded) by repeatedly calling FindNextPlan against one PlanState,
// per spec.md §6. A non-nil error means the enumeration stopped early
// (out of memory or abort); any solutions already found are still
// returned alongside it, matching §7.3/§7.4's "the current partial plan
// (if any) is returned."
func (p *Planner) FindAllPlans(factory *ast.TermFactory, dom *domain.Domain, initial *state.RuleSet, goals []*ast.Term, budget int64, maxSolutions int) ([]*Solution, *FailureReport, error) {
	logging.Infof(p.Log, map[string]any{"goals": len(goals), "maxSolutions": maxSolutions}, "FindAllPlans start")
	ps := p.NewSearch(factory, dom, initial, goals, budget, nil)
	var sols []*Solution
	for maxSolutions <= 0 || len(sols) < maxSolutions {
		sol, err := p.FindNextPlan(ps)
		if sol != nil {
			sols = append(sols, sol)
		}
		if err != nil {
			logging.Infof(p.Log, map[string]any{"solutions": len(sols), "err": err}, "FindAllPlans done")
			return sols, ps.failureReport(), err
		}
		if sol == nil {
			break
		}
	}
	logging.Infof(p.Log, map[string]any{"solutions": len(sols)}, "FindAllPlans done")
	return sols, ps.failureReport(), nil
}

// FindNextPlan advances ps by one or more search steps until it produces
// the next solution, exhausts the search, or stops on out-of-memory or
// abort (spec.md §4.6.3). Calling it again after it returns (nil, nil)
// is a no-op that keeps returning (nil, nil).
//
// An internal invariant violation (spec.md §7.5) surfaces here as an
// *Error with Code InvariantViolation rather than a process-ending panic:
// this is a library, not the reference implementation's standalone
// process, so the panic/recover pair below is the idiomatic translation
// of "fail fast with a diagnostic."
func (p *Planner) FindNextPlan(ps *PlanState) (sol *Solution, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				sol, err = nil, e
				return
			}
			panic(r)
		}
	}()

	if ps.exhausted {
		return nil, nil
	}
	if ps.pendingSuccess {
		ps.pendingSuccess = false
		ps.doReturn(true)
	}

	for {
		if ps.top == nil {
			ps.exhausted = true
			return nil, nil
		}
		if ps.abort.IsSet() {
			logging.Warnf(ps.log, map[string]any{"node": ps.top.id}, "abort flag observed")
			ps.top.tag = AbortTag
		}

		n := ps.top
		switch n.tag {
		case NextTask:
			done, result := ps.stepNextTask(n)
			if done {
				return result, nil
			}

		case ReturnFromCheckForOperator:
			ps.doReturn(n.returnValue)

		case NextMethodThatApplies:
			ps.stepNextMethodThatApplies(n)

		case NextNormalMethodCondition:
			ps.stepNextNormalMethodCondition(n)

		case ReturnFromNextNormalMethodCondition:
			if n.returnValue {
				n.methodHadSolution = true
				n.atLeastOneMethodHadSolution = true
			}
			n.tag = NextNormalMethodCondition

		case ReturnFromHandleTryTerm:
			if !n.returnValue && n.retry {
				n.tag = NextTask
			} else {
				ps.doReturn(n.returnValue)
			}

		case ReturnFromSetOfConditions:
			if n.returnValue {
				n.methodHadSolution = true
				n.atLeastOneMethodHadSolution = true
			}
			n.tag = NextMethodThatApplies

		case OutOfMemoryTag:
			ps.factory.SetOutOfMemory()
			result := ps.buildSolution(n)
			ps.exhausted = true
			return result, &Error{Code: OutOfMemory, Message: "memory budget exhausted during search"}

		case AbortTag:
			result := ps.buildSolution(n)
			ps.exhausted = true
			return result, &Error{Code: Aborted, Message: "search aborted"}

		case Fail:
			ps.doReturn(false)

		default:
			invariantViolation("unknown continuation tag %v", n.tag)
		}
	}
}

// nodeIDFromTerm extracts the owning-node ID argument carried by a
// try/tryEnd/countAnyOf/failIfNoneOf bookkeeping task.
func nodeIDFromTerm(t *ast.Term) (int, bool) {
	if t.Arity() != 1 {
		return 0, false
	}
	v, ok := t.Child(0).IntValue()
	return int(v), ok
}

// stepNextTask implements the NextTask tag (spec.md §4.6.2). done is true
// when a solution is ready for the caller; result is non-nil only then.
func (ps *PlanState) stepNextTask(n *PlanNode) (done bool, result *Solution) {
	if len(n.tasks) == 0 {
		result = ps.buildSolution(n)
		ps.pendingSuccess = true
		return true, result
	}

	task := n.tasks[0]
	rest := n.tasks[1:]

	resolved, err := ps.factory.ResolveArithmeticTerms(task)
	if err != nil {
		n.tasks = rest
		ps.doReturn(false)
		return false, nil
	}

	if op, ok := ps.domain.OperatorFor(resolved.Name()); ok {
		u, unified := unify.Unify(ps.factory, resolved, op.Head)
		ground := unified && u.ResolveInterned(ps.factory, op.Head).IsGround()
		if !ground {
			ps.doReturn(false)
			return false, nil
		}
		substHead := u.ResolveInterned(ps.factory, op.Head)
		adds := unify.SubstituteUnifiers(ps.factory, u, op.Additions)
		dels := unify.SubstituteUnifiers(ps.factory, u, op.Deletions)
		n.state.Update(dels, adds)
		newOps := n.ops
		if !op.Hidden {
			newOps = n.ops.push(substHead)
		}
		child := &PlanNode{tag: NextTask, tasks: rest, ops: newOps, state: n.state}
		n.tag = ReturnFromCheckForOperator
		ps.push(child)
		return false, nil
	}

	switch resolved.Name() {
	case "try":
		tryEnd := ps.factory.CreateFunctor("tryEnd", ps.factory.CreateIntegerConstant(int64(n.id)))
		combined := make([]*ast.Term, 0, resolved.Arity()+1+len(rest))
		combined = append(combined, resolved.Children()...)
		combined = append(combined, tryEnd)
		combined = append(combined, rest...)
		n.tasks = rest
		child := newNodeWithCopy(n, combined)
		n.retry = true
		n.tag = ReturnFromHandleTryTerm
		ps.push(child)
		return false, nil

	case "tryEnd":
		if id, ok := nodeIDFromTerm(resolved); ok {
			if anc := ancestorByID(n, id); anc != nil {
				anc.retry = false
			}
		}
		n.tasks = rest
		return false, nil

	case "countAnyOf":
		if id, ok := nodeIDFromTerm(resolved); ok {
			if anc := ancestorByID(n, id); anc != nil {
				anc.tryAnyOfSuccessCount++
			}
		}
		n.tasks = rest
		return false, nil

	case "failIfNoneOf":
		var anc *PlanNode
		if id, ok := nodeIDFromTerm(resolved); ok {
			anc = ancestorByID(n, id)
		}
		if anc == nil || anc.tryAnyOfSuccessCount == 0 {
			ps.doReturn(false)
			return false, nil
		}
		n.tasks = rest
		return false, nil
	}

	methods := ps.domain.MethodsFor(ps.factory, resolved)
	if len(methods) == 0 {
		suggestion := ps.domain.SuggestOperatorName(resolved.Name())
		ps.recordFailureWithSuggestion(n.depth, 0, []*ast.Term{resolved}, suggestion)
		ps.doReturn(false)
		return false, nil
	}

	n.tasks = rest
	n.candidateTask = resolved
	n.methods = methods
	n.methodIdx = 0
	n.methodHadSolution = false
	n.atLeastOneMethodHadSolution = false
	n.tag = NextMethodThatApplies
	return false, nil
}

// stepNextMethodThatApplies implements the NextMethodThatApplies tag. It
// considers exactly one candidate method per call: callers keep
// re-entering this case (tag unchanged) until a candidate is accepted or
// the list is exhausted, matching "pop the next candidate method" as a
// single step of the outer loop.
func (ps *PlanState) stepNextMethodThatApplies(n *PlanNode) {
	if n.methodIdx >= len(n.methods) {
		ps.doReturn(n.atLeastOneMethodHadSolution)
		return
	}
	m := n.methods[n.methodIdx]
	n.methodIdx++

	if n.methodHadSolution && m.IsDefault {
		return // skip this else-arm; a prior sibling in the group already succeeded
	}
	if !m.IsDefault {
		n.methodHadSolution = false // starting a fresh if/else group
	}

	headUnifier, ok := unify.Unify(ps.factory, n.candidateTask, m.Head)
	if !ok {
		return
	}
	n.method = m
	n.headUnifier = headUnifier
	logging.Debugf(ps.log, map[string]any{"node": n.id, "method": m.DocumentOrder, "type": m.Type}, "trying method")

	condition := unify.SubstituteUnifiers(ps.factory, headUnifier, m.Condition)
	remaining := int64(math.MaxInt64)
	if ps.budget > 0 {
		remaining = ps.budget - ps.dynamicSize()
	}
	ps.metrics.IncResolverCalls()
	outcome := resolve.Resolve(ps.factory, n.state, condition, remaining)
	if outcome.OutOfMemory {
		n.tag = OutOfMemoryTag
		return
	}
	if len(outcome.Solutions) == 0 {
		logging.Debugf(ps.log, map[string]any{"node": n.id, "method": m.DocumentOrder}, "method condition failed")
		ps.RecordFailure(n.depth+1, outcome.FurthestFailIndex, outcome.FurthestFailGoals)
		return
	}

	n.resolutions = outcome.Solutions
	n.resolutionIdx = 0

	switch m.Type {
	case domain.Normal:
		n.tag = NextNormalMethodCondition

	case domain.AllSetOf:
		var all []*ast.Term
		for _, r := range outcome.Solutions {
			subtasks := unify.SubstituteUnifiers(ps.factory, headUnifier, m.Subtasks)
			subtasks = unify.SubstituteUnifiers(ps.factory, r, subtasks)
			all = append(all, subtasks...)
		}
		child := newNodeWithCopy(n, all)
		n.tag = ReturnFromSetOfConditions
		ps.push(child)

	case domain.AnySetOf:
		newID := ps.nextNodeID
		var combined []*ast.Term
		for _, r := range outcome.Solutions {
			subtasks := unify.SubstituteUnifiers(ps.factory, headUnifier, m.Subtasks)
			subtasks = unify.SubstituteUnifiers(ps.factory, r, subtasks)
			branch := append(append([]*ast.Term{}, subtasks...), ps.factory.CreateFunctor("countAnyOf", ps.factory.CreateIntegerConstant(int64(newID))))
			combined = append(combined, ps.factory.CreateFunctor("try", branch...))
		}
		combined = append(combined, ps.factory.CreateFunctor("failIfNoneOf", ps.factory.CreateIntegerConstant(int64(newID))))
		child := newNodeWithCopy(n, combined)
		n.tag = ReturnFromSetOfConditions
		ps.push(child)

	default:
		invariantViolation("unknown method type %v", m.Type)
	}
}

// stepNextNormalMethodCondition implements the NextNormalMethodCondition
// tag: pop the next resolution, substitute it (and the head unifier) into
// the method's subtasks, and push a new state-copied frame to pursue it.
func (ps *PlanState) stepNextNormalMethodCondition(n *PlanNode) {
	if n.resolutionIdx >= len(n.resolutions) {
		n.tag = NextMethodThatApplies
		return
	}
	r := n.resolutions[n.resolutionIdx]
	n.resolutionIdx++

	subtasks := unify.SubstituteUnifiers(ps.factory, n.headUnifier, n.method.Subtasks)
	subtasks = unify.SubstituteUnifiers(ps.factory, r, subtasks)
	combined := append(append([]*ast.Term{}, subtasks...), n.tasks...)

	child := newNodeWithCopy(n, combined)
	n.tag = ReturnFromNextNormalMethodCondition
	ps.push(child)
}
