package loader

import (
	"fmt"

	"github.com/inductorhtn/htnplan/ast"
)

// TermSpec is the structured-YAML encoding of a ast.Term. Exactly one of
// Var, Const, Int, Float, or Functor must be set; this mirrors the three
// Term variants of spec.md §3 directly rather than parsing a textual
// functional notation, since the concrete-syntax parser is an explicit
// non-goal of the core.
type TermSpec struct {
	Var     string     `yaml:"var,omitempty"`
	Const   string     `yaml:"const,omitempty"`
	Int     *int64     `yaml:"int,omitempty"`
	Float   *float64   `yaml:"float,omitempty"`
	Functor string     `yaml:"functor,omitempty"`
	Args    []TermSpec `yaml:"args,omitempty"`
}

// Build interns the term this spec describes through factory, recursively
// building any functor arguments first.
func (s TermSpec) Build(factory *ast.TermFactory) (*ast.Term, error) {
	switch {
	case s.Var != "":
		return factory.CreateVariable(s.Var), nil
	case s.Functor != "":
		children := make([]*ast.Term, len(s.Args))
		for i, a := range s.Args {
			c, err := a.Build(factory)
			if err != nil {
				return nil, fmt.Errorf("arg %d of functor %q: %w", i, s.Functor, err)
			}
			children[i] = c
		}
		return factory.CreateFunctor(s.Functor, children...), nil
	case s.Int != nil:
		return factory.CreateIntegerConstant(*s.Int), nil
	case s.Float != nil:
		return factory.CreateFloatConstant(*s.Float), nil
	case s.Const != "":
		return factory.CreateConstant(s.Const), nil
	default:
		return nil, fmt.Errorf("empty term spec")
	}
}

// BuildAll builds every spec in list, in order, failing on the first
// error.
func BuildAll(factory *ast.TermFactory, list []TermSpec) ([]*ast.Term, error) {
	out := make([]*ast.Term, len(list))
	for i, s := range list {
		t, err := s.Build(factory)
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}
