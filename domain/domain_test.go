package domain

import (
	"testing"

	"github.com/inductorhtn/htnplan/ast"
)

func TestAddOperatorRejectsDuplicateName(t *testing.T) {
	f := ast.NewTermFactory()
	d := NewDomain()
	head := f.CreateFunctor("move", f.CreateVariable("x"), f.CreateVariable("y"))
	if _, err := d.AddOperator(head, nil, nil, false); err != nil {
		t.Fatalf("unexpected error on first AddOperator: %v", err)
	}
	if _, err := d.AddOperator(head, nil, nil, false); err == nil {
		t.Fatalf("expected duplicate operator name to be rejected")
	}
}

func TestAddOperatorSuggestsNearestName(t *testing.T) {
	f := ast.NewTermFactory()
	d := NewDomain()
	d.AddOperator(f.CreateFunctor("move", f.CreateVariable("x")), nil, nil, false)
	_, err := d.AddOperator(f.CreateFunctor("move", f.CreateVariable("y")), nil, nil, false)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

func TestMethodsForOrdersByDocumentOrder(t *testing.T) {
	f := ast.NewTermFactory()
	d := NewDomain()
	task := f.CreateFunctor("travel", f.CreateVariable("x"), f.CreateVariable("y"))
	m1 := d.AddMethod(task, nil, nil, Normal, false)
	m2 := d.AddMethod(task, nil, nil, Normal, true)

	got := d.MethodsFor(f, f.CreateFunctor("travel", f.CreateConstant("p"), f.CreateConstant("park")))
	if len(got) != 2 || got[0] != m1 || got[1] != m2 {
		t.Fatalf("expected methods in document order [%v %v], got %v", m1, m2, got)
	}
}

func TestMethodLookupCacheInvalidatedByAddMethod(t *testing.T) {
	f := ast.NewTermFactory()
	d := NewDomain()
	task := f.CreateFunctor("travel", f.CreateVariable("x"))
	ground := f.CreateFunctor("travel", f.CreateConstant("p"))

	if got := d.MethodsFor(f, ground); len(got) != 0 {
		t.Fatalf("expected no methods before any AddMethod call, got %d", len(got))
	}
	d.AddMethod(task, nil, nil, Normal, false)
	if got := d.MethodsFor(f, ground); len(got) != 1 {
		t.Fatalf("expected the cache to be invalidated after AddMethod, got %d methods", len(got))
	}
}

func TestMethodsWithExactHeadUsesInternedTermIndex(t *testing.T) {
	f := ast.NewTermFactory()
	d := NewDomain()
	head := f.CreateFunctor("travel", f.CreateVariable("x"), f.CreateVariable("y"))
	other := f.CreateFunctor("travel", f.CreateVariable("a"), f.CreateVariable("b"))
	m := d.AddMethod(head, nil, nil, Normal, false)

	// head and other are distinct Terms with different variable names, so
	// they intern to different UniqueIDs even though they'd unify.
	got := d.MethodsWithExactHead(head)
	if len(got) != 1 || got[0] != m {
		t.Fatalf("MethodsWithExactHead(head) = %v, want [%v]", got, m)
	}
	if got := d.MethodsWithExactHead(other); len(got) != 0 {
		t.Fatalf("MethodsWithExactHead(other) = %v, want none (distinct interned term)", got)
	}
}

func TestSuggestOperatorNameNoClosMatch(t *testing.T) {
	f := ast.NewTermFactory()
	d := NewDomain()
	d.AddOperator(f.CreateFunctor("move", f.CreateVariable("x")), nil, nil, false)
	if got := d.SuggestOperatorName("zzzzzzzzzzzzzzzz"); got != "" {
		t.Fatalf("expected no suggestion for a very distant name, got %q", got)
	}
}
