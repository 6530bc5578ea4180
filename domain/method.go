package domain

import "github.com/inductorhtn/htnplan/ast"

// MethodType selects how a method's subtasks are expanded once its
// condition resolves to more than one binding set.
type MethodType int

const (
	// Normal expands exactly one resolution per enumerated plan; multiple
	// resolutions are tried across successive FindNextPlan calls.
	Normal MethodType = iota
	// AllSetOf concatenates the subtasks substituted under every
	// resolution into a single task list — all refinements must succeed.
	AllSetOf
	// AnySetOf tries each resolution's subtasks independently inside a
	// try/countAnyOf wrapper — at least one refinement must succeed.
	AnySetOf
)

func (t MethodType) String() string {
	switch t {
	case Normal:
		return "normal"
	case AllSetOf:
		return "allOf"
	case AnySetOf:
		return "anyOf"
	default:
		return "unknown"
	}
}

// Method is an immutable compound-task refinement: a head, a condition
// (conjunction of goal terms checked against the current RuleSet), a list
// of subtask terms, a MethodType, the "else" default flag, and the
// load-time document order used to break ties deterministically.
type Method struct {
	Head          *ast.Term
	Condition     []*ast.Term
	Subtasks      []*ast.Term
	Type          MethodType
	IsDefault     bool
	DocumentOrder int
}
