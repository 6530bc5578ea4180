package resolve

import (
	"testing"

	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/state"
)

func TestResolveFactLookup(t *testing.T) {
	f := ast.NewTermFactory()
	rs := state.NewRuleSet()
	rs.AddFact(f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start")))
	rs.Lock()

	goal := f.CreateFunctor("at", f.CreateVariable("x"), f.CreateConstant("start"))
	outcome := Resolve(f, rs, []*ast.Term{goal}, 1<<20)
	if len(outcome.Solutions) != 1 {
		t.Fatalf("expected exactly one solution, got %d", len(outcome.Solutions))
	}
	x := f.CreateVariable("x")
	bound, ok := outcome.Solutions[0].Get(x)
	if !ok || !bound.Equal(f.CreateConstant("a")) {
		t.Fatalf("expected x bound to a, got %v", bound)
	}
}

func TestResolveRuleWithBody(t *testing.T) {
	f := ast.NewTermFactory()
	rs := state.NewRuleSet()
	rs.AddFact(f.CreateFunctor("near", f.CreateConstant("home"), f.CreateConstant("park")))
	rs.AddRule(
		f.CreateFunctor("reachable", f.CreateVariable("a"), f.CreateVariable("b")),
		[]*ast.Term{f.CreateFunctor("near", f.CreateVariable("a"), f.CreateVariable("b"))},
	)
	rs.Lock()

	goal := f.CreateFunctor("reachable", f.CreateConstant("home"), f.CreateConstant("park"))
	outcome := Resolve(f, rs, []*ast.Term{goal}, 1<<20)
	if len(outcome.Solutions) != 1 {
		t.Fatalf("expected one solution through the rule body, got %d", len(outcome.Solutions))
	}
}

func TestResolveNegationAsFailure(t *testing.T) {
	f := ast.NewTermFactory()
	rs := state.NewRuleSet()
	rs.Lock()

	goal := f.CreateFunctor("not", f.CreateFunctor("blocked", f.CreateConstant("door")))
	outcome := Resolve(f, rs, []*ast.Term{goal}, 1<<20)
	if len(outcome.Solutions) != 1 {
		t.Fatalf("expected not(blocked(door)) to succeed when blocked(door) has no support")
	}
}

func TestResolveNegationFailsWhenInnerGoalHolds(t *testing.T) {
	f := ast.NewTermFactory()
	rs := state.NewRuleSet()
	rs.AddFact(f.CreateFunctor("blocked", f.CreateConstant("door")))
	rs.Lock()

	goal := f.CreateFunctor("not", f.CreateFunctor("blocked", f.CreateConstant("door")))
	outcome := Resolve(f, rs, []*ast.Term{goal}, 1<<20)
	if len(outcome.Solutions) != 0 {
		t.Fatalf("expected not(blocked(door)) to fail when blocked(door) holds")
	}
}

func TestResolveConjunctionSharesVariableBindings(t *testing.T) {
	f := ast.NewTermFactory()
	rs := state.NewRuleSet()
	rs.AddFact(f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start")))
	rs.AddFact(f.CreateFunctor("open", f.CreateConstant("start")))
	rs.Lock()

	x := f.CreateVariable("x")
	goals := []*ast.Term{
		f.CreateFunctor("at", f.CreateConstant("a"), x),
		f.CreateFunctor("open", x),
	}
	outcome := Resolve(f, rs, goals, 1<<20)
	if len(outcome.Solutions) != 1 {
		t.Fatalf("expected the shared variable binding to carry across the conjunction, got %d solutions", len(outcome.Solutions))
	}
}

func TestResolveOutOfMemory(t *testing.T) {
	f := ast.NewTermFactory()
	rs := state.NewRuleSet()
	rs.AddFact(f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start")))
	rs.Lock()

	goal := f.CreateFunctor("at", f.CreateVariable("x"), f.CreateConstant("start"))
	outcome := Resolve(f, rs, []*ast.Term{goal}, 0)
	if !outcome.OutOfMemory {
		t.Fatalf("expected a zero budget to trip OutOfMemory")
	}
}

func TestResolveArithmeticComparisonGoal(t *testing.T) {
	f := ast.NewTermFactory()
	rs := state.NewRuleSet()
	rs.Lock()

	goal := f.CreateFunctor("<", f.CreateIntegerConstant(2), f.CreateIntegerConstant(3))
	outcome := Resolve(f, rs, []*ast.Term{goal}, 1<<20)
	if len(outcome.Solutions) != 1 {
		t.Fatalf("expected 2 < 3 to resolve true")
	}
}
