package planner

import "github.com/inductorhtn/htnplan/ast"

// opList is a persistent (cons-cell) list of accumulated ground operator
// heads. It is persistent rather than a plain slice so that pushing a
// sibling child from the same parent never risks the classic Go
// append-aliasing bug: two children derived from one parent's opList must
// never be able to corrupt each other's view even though only one branch
// is actually live at a time during this single-threaded DFS.
type opList struct {
	head *ast.Term
	tail *opList
}

func (l *opList) push(t *ast.Term) *opList {
	return &opList{head: t, tail: l}
}

// slice materializes the list in the order operators were applied.
func (l *opList) slice() []*ast.Term {
	var rev []*ast.Term
	for n := l; n != nil; n = n.tail {
		rev = append(rev, n.head)
	}
	out := make([]*ast.Term, len(rev))
	for i, t := range rev {
		out[len(rev)-1-i] = t
	}
	return out
}

func (l *opList) len() int {
	n := 0
	for c := l; c != nil; c = c.tail {
		n++
	}
	return n
}
