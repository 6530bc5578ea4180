package resolve

import (
	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/state"
	"github.com/inductorhtn/htnplan/unify"
)

// unifierOverheadBytes approximates the resolver's own per-binding-set
// contribution to the memory budget, on top of whatever terms it interns
// through factory (which the planner already counts via
// TermFactory.DynamicSize).
const unifierOverheadBytes = 96

var comparisonFunctors = map[string]bool{
	"<": true, ">": true, "<=": true, ">=": true, "=:=": true, "=\\=": true,
}

// Outcome is the result of resolving one conjunction. Solutions == nil
// means no solution exists (spec.md §4.4: "A result of null means no
// solution"); a non-nil empty-unifier slice of length 1 means the
// conjunction is trivially true.
type Outcome struct {
	Solutions          []*unify.Unifier
	OutOfMemory        bool
	MemoryUsed         int64
	FurthestFailIndex  int
	FurthestFailGoals  []*ast.Term
}

type tracker struct {
	budget int64
	used   int64
}

func (t *tracker) charge(n int64) bool {
	t.used += n
	return t.used <= t.budget
}

// Resolve finds every unifier that satisfies the conjunction goals against
// rs, within the given remaining memory budget (already reduced by the
// caller's own live size, per spec.md §4.6.2).
func Resolve(factory *ast.TermFactory, rs *state.RuleSet, goals []*ast.Term, budget int64) *Outcome {
	tr := &tracker{budget: budget}
	var gen uint64
	results, oom, fi, fc := resolveFrom(factory, rs, goals, 0, unify.New(), tr, &gen)
	return &Outcome{
		Solutions:         results,
		OutOfMemory:       oom,
		MemoryUsed:        tr.used,
		FurthestFailIndex: fi,
		FurthestFailGoals: fc,
	}
}

func resolveFrom(factory *ast.TermFactory, rs *state.RuleSet, goals []*ast.Term, i int, acc *unify.Unifier, tr *tracker, gen *uint64) (results []*unify.Unifier, oom bool, furthestIdx int, failCtx []*ast.Term) {
	if i >= len(goals) {
		return []*unify.Unifier{acc}, false, -1, nil
	}
	if !tr.charge(0) { // cheap re-check of an already-blown budget before doing more work
		return nil, true, 0, nil
	}

	goalSub := acc.ResolveInterned(factory, goals[i])

	if goalSub.IsFunctor() && goalSub.Name() == "not" && goalSub.Arity() == 1 {
		inner, oom, _, _ := resolveFrom(factory, rs, []*ast.Term{goalSub.Child(0)}, 0, unify.New(), tr, gen)
		if oom {
			return nil, true, 0, nil
		}
		if len(inner) > 0 {
			return nil, false, i, goals[i:]
		}
		return resolveFrom(factory, rs, goals, i+1, acc, tr, gen)
	}

	if goalSub.IsFunctor() && goalSub.Name() == "is" && goalSub.Arity() == 2 {
		val, err := factory.ResolveArithmeticTerms(goalSub.Child(1))
		if err != nil {
			return nil, false, i, goals[i:]
		}
		u2, ok := unify.Unify(factory, goalSub.Child(0), val)
		if !ok {
			return nil, false, i, goals[i:]
		}
		merged, ok := unify.Combine(factory, acc, u2)
		if !ok {
			return nil, false, i, goals[i:]
		}
		if !tr.charge(unifierOverheadBytes) {
			return nil, true, 0, nil
		}
		return resolveFrom(factory, rs, goals, i+1, merged, tr, gen)
	}

	if goalSub.IsFunctor() && comparisonFunctors[goalSub.Name()] && goalSub.Arity() == 2 {
		val, err := factory.ResolveArithmeticTerms(goalSub)
		if err != nil || val.Name() != "true" {
			return nil, false, i, goals[i:]
		}
		return resolveFrom(factory, rs, goals, i+1, acc, tr, gen)
	}

	if goalSub.Name() == "true" && goalSub.Arity() == 0 {
		return resolveFrom(factory, rs, goals, i+1, acc, tr, gen)
	}

	furthestIdx = -1
	candidates := rs.RulesFor(goalSub.Name(), goalSub.Arity())
	for _, rule := range candidates {
		if !tr.charge(0) {
			return nil, true, 0, nil
		}
		rn := newRenamer(factory, gen)
		freshHead := rn.rename(rule.Head)
		headUnifier, ok := unify.Unify(factory, goalSub, freshHead)
		if !ok {
			continue
		}
		merged, ok := unify.Combine(factory, acc, headUnifier)
		if !ok {
			continue
		}
		if !tr.charge(unifierOverheadBytes) {
			return nil, true, 0, nil
		}

		if rule.IsFact() {
			sub, oom, fi, fc := resolveFrom(factory, rs, goals, i+1, merged, tr, gen)
			if oom {
				return nil, true, 0, nil
			}
			results = append(results, sub...)
			if len(sub) == 0 && fi > furthestIdx {
				furthestIdx, failCtx = fi, fc
			}
			continue
		}

		freshBody := make([]*ast.Term, len(rule.Body))
		for bi, b := range rule.Body {
			freshBody[bi] = rn.rename(b)
		}
		bodyResults, oom, bfi, bfc := resolveFrom(factory, rs, freshBody, 0, merged, tr, gen)
		if oom {
			return nil, true, 0, nil
		}
		if len(bodyResults) == 0 {
			if bfi >= 0 && i > furthestIdx {
				furthestIdx, failCtx = i, bfc
			}
			continue
		}
		for _, br := range bodyResults {
			restResults, oom2, rfi, rfc := resolveFrom(factory, rs, goals, i+1, br, tr, gen)
			if oom2 {
				return nil, true, 0, nil
			}
			results = append(results, restResults...)
			if len(restResults) == 0 && rfi > furthestIdx {
				furthestIdx, failCtx = rfi, rfc
			}
		}
	}

	if len(results) == 0 && furthestIdx < 0 {
		furthestIdx, failCtx = i, goals[i:]
	}
	return results, false, furthestIdx, failCtx
}
