package domain

import "github.com/inductorhtn/htnplan/ast"

// Operator is an immutable primitive action: a head, the facts it deletes
// and adds when applied, and whether it is hidden from the reported plan
// (a hidden operator's effects still apply; it is simply not emitted).
type Operator struct {
	Head      *ast.Term
	Additions []*ast.Term
	Deletions []*ast.Term
	Hidden    bool
}
