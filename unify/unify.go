// Package unify implements most-general-unification of two terms and
// substitution of a Unifier over a term, per spec.md §3/§4.3/§4.4.
package unify

import (
	"github.com/inductorhtn/htnplan/ast"
)

// Unifier is an ordered mapping from Variable to Term with no cycles.
// Insertion order is preserved so that iteration (used by diagnostics and
// by tests asserting determinism) is itself deterministic.
type Unifier struct {
	order []ast.UniqueID
	bind  map[ast.UniqueID]*ast.Term
	names map[ast.UniqueID]*ast.Term // variable term, for re-deriving order
}

// New returns an empty Unifier — the trivial unifier that makes any term
// equal to itself.
func New() *Unifier {
	return &Unifier{bind: make(map[ast.UniqueID]*ast.Term), names: make(map[ast.UniqueID]*ast.Term)}
}

// Len returns the number of bound variables.
func (u *Unifier) Len() int { return len(u.order) }

// Get returns the term currently bound to v (not walked through chained
// bindings — use Resolve for that), and whether v is bound.
func (u *Unifier) Get(v *ast.Term) (*ast.Term, bool) {
	t, ok := u.bind[v.UniqueID()]
	return t, ok
}

// Iter calls f for each binding in insertion order.
func (u *Unifier) Iter(f func(variable, value *ast.Term)) {
	for _, id := range u.order {
		f(u.names[id], u.bind[id])
	}
}

func (u *Unifier) set(v, t *ast.Term) {
	id := v.UniqueID()
	if _, exists := u.bind[id]; !exists {
		u.order = append(u.order, id)
		u.names[id] = v
	}
	u.bind[id] = t
}

// walk follows a chain of variable bindings to either an unbound variable
// or a non-variable term. No occurs-check, no cycle detection: matches the
// reference implementation's documented omission (spec.md §4.3, §9).
func (u *Unifier) walk(t *ast.Term) *ast.Term {
	for t.IsVariable() {
		next, ok := u.Get(t)
		if !ok {
			return t
		}
		t = next
	}
	return t
}

// IsGround reports whether every bound value, after following chains,
// contains no unbound variable.
func (u *Unifier) IsGround() bool {
	var groundUnder func(t *ast.Term) bool
	groundUnder = func(t *ast.Term) bool {
		t = u.walk(t)
		if t.IsVariable() {
			return false
		}
		for _, c := range t.Children() {
			if !groundUnder(c) {
				return false
			}
		}
		return true
	}
	ground := true
	u.Iter(func(_, value *ast.Term) {
		if !groundUnder(value) {
			ground = false
		}
	})
	return ground
}

// Unify computes the most general unifier of a and b, or returns (nil,
// false) if they do not unify. New terms produced while unifying (e.g.
// substituted functor children) are interned through factory.
func Unify(factory *ast.TermFactory, a, b *ast.Term) (*Unifier, bool) {
	u := New()
	if unifyInto(u, factory, a, b) {
		return u, true
	}
	return nil, false
}

func unifyInto(u *Unifier, factory *ast.TermFactory, a, b *ast.Term) bool {
	a = u.walk(a)
	b = u.walk(b)

	if a.Equal(b) {
		return true
	}

	if a.IsVariable() {
		u.set(a, b)
		return true
	}
	if b.IsVariable() {
		u.set(b, a)
		return true
	}

	if a.IsConstant() && b.IsConstant() {
		return false // not Equal above, and both non-variable constants: distinct
	}

	if a.IsFunctor() && b.IsFunctor() {
		if a.Name() != b.Name() || a.Arity() != b.Arity() {
			return false
		}
		for i := range a.Children() {
			if !unifyInto(u, factory, a.Child(i), b.Child(i)) {
				return false
			}
		}
		return true
	}

	return false
}

// Resolve applies u to t without a factory: a bound variable is followed
// all the way through its chain of bindings, but a functor is returned as
// is, even when some of its children are bound variables, because
// rebuilding it needs a factory. Use ResolveInterned to substitute inside
// functors.
func (u *Unifier) Resolve(t *ast.Term) *ast.Term {
	return u.resolveWith(nil, t)
}

// ResolveInterned applies u to t, replacing bound variables and rebuilding
// functors bottom-up, iterated to a fixed point; any newly-built functor is
// interned through factory, guaranteeing the result shares storage with structurally
// equal terms elsewhere (spec.md §4.3: "always produce a newly interned
// term when structure changes").
func (u *Unifier) ResolveInterned(factory *ast.TermFactory, t *ast.Term) *ast.Term {
	return u.resolveWith(factory, t)
}

func (u *Unifier) resolveWith(factory *ast.TermFactory, t *ast.Term) *ast.Term {
	t = u.walk(t)
	if !t.IsFunctor() || t.Arity() == 0 {
		return t
	}
	children := t.Children()
	newChildren := make([]*ast.Term, len(children))
	changed := false
	for i, c := range children {
		nc := u.resolveWith(factory, c)
		newChildren[i] = nc
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return t
	}
	if factory == nil {
		return t
	}
	return factory.CreateFunctor(t.Name(), newChildren...)
}

// SubstituteUnifiers applies u to every term in list and returns the
// (possibly newly interned) results.
func SubstituteUnifiers(factory *ast.TermFactory, u *Unifier, list []*ast.Term) []*ast.Term {
	out := make([]*ast.Term, len(list))
	for i, t := range list {
		out[i] = u.ResolveInterned(factory, t)
	}
	return out
}

// Combine merges two unifiers, succeeding only if they agree on every
// variable bound by both (spec.md §4.4's conjunction conflict check). The
// returned Unifier is a new value; a and b are untouched.
func Combine(factory *ast.TermFactory, a, b *Unifier) (*Unifier, bool) {
	out := New()
	a.Iter(func(v, val *ast.Term) { out.set(v, val) })
	ok := true
	b.Iter(func(v, val *ast.Term) {
		if !ok {
			return
		}
		if existing, has := out.Get(v); has {
			if !existing.Equal(val) {
				// Fall back to structural unification in case both sides
				// are non-ground but compatible (e.g. bound to different
				// variables that themselves unify).
				sub, merged := Unify(factory, existing, val)
				if !merged {
					ok = false
					return
				}
				sub.Iter(func(v2, val2 *ast.Term) { out.set(v2, val2) })
				return
			}
		}
		out.set(v, val)
	})
	if !ok {
		return nil, false
	}
	return out, true
}
