package ast

import "testing"

func TestResolveArithmeticAddition(t *testing.T) {
	f := NewTermFactory()
	expr := f.CreateFunctor("+", f.CreateIntegerConstant(2), f.CreateIntegerConstant(3))
	result, err := f.ResolveArithmeticTerms(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := result.IntValue()
	if !ok || v != 5 {
		t.Fatalf("got (%d, %v), want (5, true)", v, ok)
	}
}

func TestResolveArithmeticIsBindsRHS(t *testing.T) {
	f := NewTermFactory()
	expr := f.CreateFunctor("is", f.CreateVariable("x"), f.CreateFunctor("*", f.CreateIntegerConstant(6), f.CreateIntegerConstant(7)))
	result, err := f.ResolveArithmeticTerms(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := result.IntValue()
	if !ok || v != 42 {
		t.Fatalf("got (%d, %v), want (42, true)", v, ok)
	}
}

func TestResolveArithmeticDivisionByZero(t *testing.T) {
	f := NewTermFactory()
	expr := f.CreateFunctor("/", f.CreateIntegerConstant(1), f.CreateIntegerConstant(0))
	if _, err := f.ResolveArithmeticTerms(expr); err == nil {
		t.Fatalf("expected division by zero to error")
	}
}

func TestResolveArithmeticComparison(t *testing.T) {
	f := NewTermFactory()
	expr := f.CreateFunctor("<", f.CreateIntegerConstant(2), f.CreateIntegerConstant(3))
	result, err := f.ResolveArithmeticTerms(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name() != "true" {
		t.Fatalf("got %q, want %q", result.Name(), "true")
	}
}

func TestResolveArithmeticPassesThroughNonArithmeticFunctors(t *testing.T) {
	f := NewTermFactory()
	expr := f.CreateFunctor("at", f.CreateConstant("a"), f.CreateConstant("start"))
	result, err := f.ResolveArithmeticTerms(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expr {
		t.Fatalf("expected a non-arithmetic functor to resolve to the same interned term")
	}
}
