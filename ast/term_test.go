package ast

import "testing"

func TestInterningIsStructural(t *testing.T) {
	f := NewTermFactory()
	a := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start"))
	b := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start"))
	if a != b {
		t.Fatalf("expected structurally identical terms to share storage")
	}
	if a.UniqueID() != b.UniqueID() {
		t.Fatalf("expected identical UniqueID for structurally identical terms")
	}
}

func TestInterningDistinguishesStructure(t *testing.T) {
	f := NewTermFactory()
	a := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start"))
	b := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("goal"))
	if a.Equal(b) {
		t.Fatalf("distinct structures must not compare equal")
	}
}

func TestZeroArityFunctorDistinctFromConstant(t *testing.T) {
	f := NewTermFactory()
	c := f.CreateConstant("foo")
	fn := f.CreateFunctor("foo")
	if c.Equal(fn) {
		t.Fatalf("a zero-arity functor must not equal a constant of the same name")
	}
}

func TestIsGround(t *testing.T) {
	f := NewTermFactory()
	v := f.CreateVariable("x")
	ground := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start"))
	notGround := f.CreateFunctor("at", v, f.CreateConstant("start"))
	if !ground.IsGround() {
		t.Fatalf("expected ground term to report IsGround")
	}
	if notGround.IsGround() {
		t.Fatalf("expected term containing a variable to report not ground")
	}
}

func TestStringRendering(t *testing.T) {
	f := NewTermFactory()
	term := f.CreateFunctor("move", f.CreateVariable("x"), f.CreateConstant("goal"))
	if got, want := term.String(), "move(?x, goal)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestIntValue(t *testing.T) {
	f := NewTermFactory()
	n := f.CreateIntegerConstant(42)
	v, ok := n.IntValue()
	if !ok || v != 42 {
		t.Fatalf("IntValue() = (%d, %v), want (42, true)", v, ok)
	}
	if _, ok := f.CreateConstant("a").IntValue(); ok {
		t.Fatalf("IntValue() on a symbolic constant should report false")
	}
}
