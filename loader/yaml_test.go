package loader

import (
	"strings"
	"testing"

	"github.com/inductorhtn/htnplan/ast"
)

const sampleDomain = `
operators:
  - head: {functor: move, args: [{var: x}, {var: from}, {var: to}]}
    add: [{functor: at, args: [{var: x}, {var: to}]}]
    del: [{functor: at, args: [{var: x}, {var: from}]}]
methods:
  - head: {functor: travel, args: [{var: x}, {var: y}]}
    if: [{functor: near, args: [{var: x}, {var: y}]}]
    do: [{functor: move, args: [{var: x}, {var: x}, {var: y}]}]
    type: normal
facts:
  - {functor: near, args: [{const: home}, {const: park}]}
goals:
  - {functor: travel, args: [{const: home}, {const: park}]}
`

func TestLoadYAMLPopulatesTarget(t *testing.T) {
	factory := ast.NewTermFactory()
	target := NewTarget()

	goals, err := LoadYAML(factory, target, strings.NewReader(sampleDomain))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected one goal, got %d", len(goals))
	}
	if _, ok := target.Domain.OperatorFor("move"); !ok {
		t.Fatalf("expected the move operator to be registered")
	}
	if facts := target.State.ToStringFacts(); len(facts) != 1 {
		t.Fatalf("expected one loaded fact, got %v", facts)
	}
}

func TestLoadYAMLAccumulatesErrors(t *testing.T) {
	factory := ast.NewTermFactory()
	target := NewTarget()

	const broken = `
operators:
  - head: {}
  - head: {}
`
	_, err := LoadYAML(factory, target, strings.NewReader(broken))
	if err == nil {
		t.Fatalf("expected an error for two empty term specs")
	}
}

func TestLoadYAMLUnknownMethodType(t *testing.T) {
	factory := ast.NewTermFactory()
	target := NewTarget()

	const doc = `
methods:
  - head: {functor: a, args: []}
    type: bogus
`
	_, err := LoadYAML(factory, target, strings.NewReader(doc))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized method type")
	}
}

func TestTermSpecBuildFunctor(t *testing.T) {
	factory := ast.NewTermFactory()
	spec := TermSpec{Functor: "at", Args: []TermSpec{{Const: "a"}, {Var: "x"}}}
	term, err := spec.Build(factory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := factory.CreateFunctor("at", factory.CreateConstant("a"), factory.CreateVariable("x"))
	if !term.Equal(want) {
		t.Fatalf("got %v, want %v", term, want)
	}
}
