// Package ast implements the term representation and interning factory for
// the planner's first-order logic core: constants, variables, and functors,
// all immutable and hash-consed by a TermFactory.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// UniqueID identifies one interned term. Two terms with the same structure
// always carry the same UniqueID; use it for equality and hashing instead
// of deep structural comparison at call sites.
type UniqueID uint64

// Kind discriminates the three term variants.
type Kind uint8

const (
	// KindConstant is a symbol or numeric literal with no children.
	KindConstant Kind = iota
	// KindVariable binds during unification.
	KindVariable
	// KindFunctor is name + ordered children, arity >= 0. A zero-arity
	// functor is distinct from a Constant of the same name.
	KindFunctor
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	case KindFunctor:
		return "functor"
	default:
		return "unknown"
	}
}

// NumberKind distinguishes whether a Constant carries a numeric value and,
// if so, which representation backs it. Tracked separately from Kind
// because a numeric constant is still a Constant.
type NumberKind uint8

const (
	// NotNumber marks a constant that is a plain symbol.
	NotNumber NumberKind = iota
	IntegerNumber
	FloatNumber
)

// Term is an immutable, interned value: a Constant, a Variable, or a
// Functor. Terms are only ever created through a TermFactory, which
// guarantees structural equality implies identical UniqueID.
type Term struct {
	id       UniqueID
	kind     Kind
	name     string
	children []*Term
	numKind  NumberKind
	intVal   int64
	floatVal float64
}

// UniqueID returns the term's stable interned identity.
func (t *Term) UniqueID() UniqueID { return t.id }

// Kind returns the term's variant.
func (t *Term) Kind() Kind { return t.kind }

// Name returns the constant/variable name, or the functor's name.
func (t *Term) Name() string { return t.name }

// Arity returns the number of children (0 for Constant and Variable, and
// for a zero-arity functor).
func (t *Term) Arity() int { return len(t.children) }

// Children returns the functor's children. Returns nil for non-functors.
func (t *Term) Children() []*Term { return t.children }

// Child returns the i'th child, or nil if out of range.
func (t *Term) Child(i int) *Term {
	if i < 0 || i >= len(t.children) {
		return nil
	}
	return t.children[i]
}

// IsVariable reports whether this term is a Variable.
func (t *Term) IsVariable() bool { return t.kind == KindVariable }

// IsConstant reports whether this term is a Constant.
func (t *Term) IsConstant() bool { return t.kind == KindConstant }

// IsFunctor reports whether this term is a Functor.
func (t *Term) IsFunctor() bool { return t.kind == KindFunctor }

// NumberKind reports whether this term is a numeric Constant and, if so,
// its representation.
func (t *Term) NumberKind() NumberKind { return t.numKind }

// IsNumber reports whether this term is a numeric Constant.
func (t *Term) IsNumber() bool { return t.kind == KindConstant && t.numKind != NotNumber }

// IntValue returns the integer value and true if this is an integer
// Constant.
func (t *Term) IntValue() (int64, bool) {
	if t.kind == KindConstant && t.numKind == IntegerNumber {
		return t.intVal, true
	}
	return 0, false
}

// FloatValue returns the term's numeric value widened to float64, and true
// if this is a numeric Constant of either representation.
func (t *Term) FloatValue() (float64, bool) {
	switch {
	case t.kind == KindConstant && t.numKind == IntegerNumber:
		return float64(t.intVal), true
	case t.kind == KindConstant && t.numKind == FloatNumber:
		return t.floatVal, true
	default:
		return 0, false
	}
}

// IsGround reports whether this term contains no Variable anywhere in its
// structure.
func (t *Term) IsGround() bool {
	if t.kind == KindVariable {
		return false
	}
	for _, c := range t.children {
		if !c.IsGround() {
			return false
		}
	}
	return true
}

// Equal reports whether two terms are the same interned value. Because
// terms are hash-consed, this is an identity (UniqueID) comparison, not a
// structural walk.
func (t *Term) Equal(other *Term) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id == other.id
}

// String renders the term in the functional notation used throughout this
// package's error messages and the reference loader: `foo(bar, X)`,
// `start`, `?x`.
func (t *Term) String() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t *Term) writeTo(b *strings.Builder) {
	switch t.kind {
	case KindVariable:
		b.WriteByte('?')
		b.WriteString(t.name)
	case KindConstant:
		switch t.numKind {
		case IntegerNumber:
			b.WriteString(strconv.FormatInt(t.intVal, 10))
		case FloatNumber:
			b.WriteString(strconv.FormatFloat(t.floatVal, 'g', -1, 64))
		default:
			b.WriteString(t.name)
		}
	case KindFunctor:
		b.WriteString(t.name)
		b.WriteByte('(')
		for i, c := range t.children {
			if i > 0 {
				b.WriteString(", ")
			}
			c.writeTo(b)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<invalid term kind %d>", t.kind)
	}
}

// structuralKey returns a string that collision-free identifies a term's
// structure for interning purposes: same structure always yields the same
// key, and since children are already interned, the key only needs their
// UniqueIDs rather than a recursive walk.
func structuralKey(kind Kind, name string, numKind NumberKind, intVal int64, floatVal float64, children []*Term) string {
	var b strings.Builder
	switch kind {
	case KindVariable:
		b.WriteString("V:")
		b.WriteString(name)
	case KindConstant:
		switch numKind {
		case IntegerNumber:
			b.WriteString("I:")
			b.WriteString(strconv.FormatInt(intVal, 10))
		case FloatNumber:
			b.WriteString("D:")
			b.WriteString(strconv.FormatFloat(floatVal, 'b', -1, 64))
		default:
			b.WriteString("C:")
			b.WriteString(name)
		}
	case KindFunctor:
		b.WriteString("F:")
		b.WriteString(name)
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(len(children)))
		for _, c := range children {
			b.WriteByte(':')
			b.WriteString(strconv.FormatUint(uint64(c.id), 36))
		}
	}
	return b.String()
}
