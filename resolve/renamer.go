package resolve

import (
	"strconv"

	"github.com/inductorhtn/htnplan/ast"
)

// renamer standardizes a rule's variables apart on each use: two
// invocations of the same rule during one resolution must not let their
// variables collide, or an unrelated binding in one branch would leak into
// another. Each renamer instance shares one mapping across the head and
// body of a single rule invocation, so shared variables stay shared.
type renamer struct {
	factory *ast.TermFactory
	mapping map[ast.UniqueID]*ast.Term
	gen     *uint64
}

func newRenamer(factory *ast.TermFactory, gen *uint64) *renamer {
	return &renamer{factory: factory, mapping: make(map[ast.UniqueID]*ast.Term), gen: gen}
}

func (rn *renamer) rename(t *ast.Term) *ast.Term {
	switch {
	case t.IsVariable():
		if existing, ok := rn.mapping[t.UniqueID()]; ok {
			return existing
		}
		*rn.gen++
		fresh := rn.factory.CreateVariable(t.Name() + "#" + strconv.FormatUint(*rn.gen, 10))
		rn.mapping[t.UniqueID()] = fresh
		return fresh
	case t.IsFunctor():
		children := make([]*ast.Term, t.Arity())
		changed := false
		for i, c := range t.Children() {
			nc := rn.rename(c)
			children[i] = nc
			if nc != c {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return rn.factory.CreateFunctor(t.Name(), children...)
	default:
		return t
	}
}
