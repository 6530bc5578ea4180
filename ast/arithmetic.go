package ast

import "github.com/pkg/errors"

// arithmeticFunctors is the set this module recognizes, its own choice of
// functors (see SPEC_FULL.md Part D.4); anything else passes through
// ResolveArithmeticTerms unchanged.
var arithmeticFunctors = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"=:=": true, "=\\=": true, "<": true, ">": true, "<=": true, ">=": true,
	"is": true,
}

// ErrArithmetic is returned by ResolveArithmeticTerms when a recognized
// arithmetic functor cannot be reduced: division by zero, a non-numeric
// operand, or a non-ground subterm. The planner treats this as the
// enclosing task failing to unify with anything (spec.md §4.2).
var ErrArithmetic = errors.New("arithmetic resolution failed")

// ResolveArithmeticTerms recursively reduces recognized arithmetic
// functors on ground numeric subterms into a single constant term.
// Unrecognized functor names are returned unchanged (after recursively
// resolving their children, so nested arithmetic inside a non-arithmetic
// functor is still reduced).
func (f *TermFactory) ResolveArithmeticTerms(t *Term) (*Term, error) {
	if t == nil {
		return nil, nil
	}
	if t.kind != KindFunctor {
		return t, nil
	}

	resolvedChildren := make([]*Term, len(t.children))
	for i, c := range t.children {
		rc, err := f.ResolveArithmeticTerms(c)
		if err != nil {
			return nil, err
		}
		resolvedChildren[i] = rc
	}

	if !arithmeticFunctors[t.name] {
		return f.CreateFunctor(t.name, resolvedChildren...), nil
	}

	if t.name == "is" {
		if len(resolvedChildren) != 2 {
			return nil, errors.Wrapf(ErrArithmetic, "is/%d is not binary", len(resolvedChildren))
		}
		return resolvedChildren[1], nil
	}

	if len(resolvedChildren) == 1 && t.name == "-" {
		v, ok := resolvedChildren[0].FloatValue()
		if !ok {
			return nil, errors.Wrap(ErrArithmetic, "unary - applied to non-numeric operand")
		}
		return f.numericResult(-v, resolvedChildren[0].numKind), nil
	}

	if len(resolvedChildren) != 2 {
		return nil, errors.Wrapf(ErrArithmetic, "%s/%d is not binary", t.name, len(resolvedChildren))
	}

	lhs, lok := resolvedChildren[0].FloatValue()
	rhs, rok := resolvedChildren[1].FloatValue()
	if !lok || !rok {
		return nil, errors.Wrapf(ErrArithmetic, "%s applied to non-numeric operand", t.name)
	}
	bothInt := resolvedChildren[0].numKind == IntegerNumber && resolvedChildren[1].numKind == IntegerNumber

	switch t.name {
	case "+":
		return f.numericResult(lhs+rhs, numKindFor(bothInt)), nil
	case "-":
		return f.numericResult(lhs-rhs, numKindFor(bothInt)), nil
	case "*":
		return f.numericResult(lhs*rhs, numKindFor(bothInt)), nil
	case "/":
		if rhs == 0 {
			return nil, errors.Wrap(ErrArithmetic, "division by zero")
		}
		return f.numericResult(lhs/rhs, numKindFor(bothInt && int64(lhs)%int64(rhs) == 0)), nil
	case "=:=":
		return f.booleanConstant(lhs == rhs), nil
	case "=\\=":
		return f.booleanConstant(lhs != rhs), nil
	case "<":
		return f.booleanConstant(lhs < rhs), nil
	case ">":
		return f.booleanConstant(lhs > rhs), nil
	case "<=":
		return f.booleanConstant(lhs <= rhs), nil
	case ">=":
		return f.booleanConstant(lhs >= rhs), nil
	}
	return nil, errors.Wrapf(ErrArithmetic, "unrecognized arithmetic functor %q", t.name)
}

func numKindFor(isInt bool) NumberKind {
	if isInt {
		return IntegerNumber
	}
	return FloatNumber
}

func (f *TermFactory) numericResult(v float64, kind NumberKind) *Term {
	if kind == IntegerNumber {
		return f.CreateIntegerConstant(int64(v))
	}
	return f.CreateFloatConstant(v)
}

func (f *TermFactory) booleanConstant(b bool) *Term {
	if b {
		return f.CreateConstant("true")
	}
	return f.CreateConstant("false")
}
