package state

import (
	"testing"

	"github.com/inductorhtn/htnplan/ast"
)

func TestAddFactAndRulesFor(t *testing.T) {
	f := ast.NewTermFactory()
	rs := NewRuleSet()
	at := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start"))
	rs.AddFact(at)

	rules := rs.RulesFor("at", 2)
	if len(rules) != 1 || !rules[0].Head.Equal(at) {
		t.Fatalf("RulesFor did not return the added fact")
	}
}

func TestCreateCopyIsolatesDelta(t *testing.T) {
	f := ast.NewTermFactory()
	base := NewRuleSet()
	base.AddFact(f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start")))
	base.Lock()

	copyA := base.CreateCopy()
	copyB := base.CreateCopy()

	copyA.AddFact(f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("goal")))

	if len(copyB.RulesFor("at", 2)) != 1 {
		t.Fatalf("copyB must not observe copyA's mutation, got %d facts", len(copyB.RulesFor("at", 2)))
	}
	if len(copyA.RulesFor("at", 2)) != 2 {
		t.Fatalf("copyA should see both the base fact and its own addition")
	}
}

func TestUpdateRemovesAndAdds(t *testing.T) {
	f := ast.NewTermFactory()
	base := NewRuleSet()
	atStart := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start"))
	base.AddFact(atStart)
	base.Lock()

	frame := base.CreateCopy()
	atGoal := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("goal"))
	frame.Update([]*ast.Term{atStart}, []*ast.Term{atGoal})

	facts := frame.ToStringFacts()
	if len(facts) != 1 || facts[0] != atGoal.String() {
		t.Fatalf("got facts %v, want only %q", facts, atGoal.String())
	}
}

func TestUpdateOnOneFrameDoesNotAffectSibling(t *testing.T) {
	f := ast.NewTermFactory()
	base := NewRuleSet()
	atStart := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start"))
	base.AddFact(atStart)
	base.Lock()

	frameA := base.CreateCopy()
	frameB := base.CreateCopy()
	frameA.Update([]*ast.Term{atStart}, []*ast.Term{f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("goal"))})

	if facts := frameB.ToStringFacts(); len(facts) != 1 || facts[0] != atStart.String() {
		t.Fatalf("sibling frame must keep seeing the original fact, got %v", facts)
	}
}
