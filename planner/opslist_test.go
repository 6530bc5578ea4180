package planner

import (
	"testing"

	"github.com/inductorhtn/htnplan/ast"
)

func TestOpListPreservesApplicationOrder(t *testing.T) {
	f := ast.NewTermFactory()
	a := f.CreateConstant("a")
	b := f.CreateConstant("b")
	c := f.CreateConstant("c")

	var l *opList
	l = l.push(a)
	l = l.push(b)
	l = l.push(c)

	got := l.slice()
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("slice() = %v, want [a b c] in push order", got)
	}
	if l.len() != 3 {
		t.Fatalf("len() = %d, want 3", l.len())
	}
}

func TestOpListBranchesDoNotAliasEachOther(t *testing.T) {
	f := ast.NewTermFactory()
	var seed *opList
	base := seed.push(f.CreateConstant("shared"))

	branchA := base.push(f.CreateConstant("a-only"))
	branchB := base.push(f.CreateConstant("b-only"))

	a := branchA.slice()
	b := branchB.slice()
	if len(a) != 2 || a[1] != f.CreateConstant("a-only") {
		t.Fatalf("branchA.slice() = %v", a)
	}
	if len(b) != 2 || b[1] != f.CreateConstant("b-only") {
		t.Fatalf("branchB.slice() = %v", b)
	}
}
