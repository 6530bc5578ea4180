// Package loader implements the abstract loader boundary of spec.md §6:
// the core never parses concrete domain syntax itself, it only consumes a
// small set of structured Add* calls. Target adapts domain.Domain and
// state.RuleSet to the single Loader interface those calls describe, and
// YAML provides one concrete source for it grounded on gopkg.in/yaml.v3,
// in the spirit of the teacher's own bundle/config loading but over a
// structured term tree instead of a textual grammar, since reproducing
// the original parser is explicitly out of scope.
package loader

import (
	"github.com/pkg/errors"

	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/domain"
	"github.com/inductorhtn/htnplan/state"
)

// Loader is the interface the planner core's external collaborator must
// satisfy (spec.md §6). A concrete loader (YAML, or any other structured
// source) calls these methods to populate a Domain and RuleSet before a
// search begins; the core itself never constructs terms from raw text.
type Loader interface {
	AddOperator(head *ast.Term, additions, deletions []*ast.Term, hidden bool) (*domain.Operator, error)
	AddMethod(head *ast.Term, condition, subtasks []*ast.Term, methodType domain.MethodType, isDefault bool) *domain.Method
	AddFact(head *ast.Term)
	AddRule(head *ast.Term, body []*ast.Term)
}

// Target pairs a Domain and a RuleSet and adapts them to Loader. It is the
// receiving end of every loader implementation in this package.
type Target struct {
	Domain *domain.Domain
	State  *state.RuleSet
}

// NewTarget returns a Target wrapping fresh, empty Domain and RuleSet
// values ready for loading.
func NewTarget() *Target {
	return &Target{Domain: domain.NewDomain(), State: state.NewRuleSet()}
}

func (t *Target) AddOperator(head *ast.Term, additions, deletions []*ast.Term, hidden bool) (*domain.Operator, error) {
	return t.Domain.AddOperator(head, additions, deletions, hidden)
}

func (t *Target) AddMethod(head *ast.Term, condition, subtasks []*ast.Term, methodType domain.MethodType, isDefault bool) *domain.Method {
	return t.Domain.AddMethod(head, condition, subtasks, methodType, isDefault)
}

func (t *Target) AddFact(head *ast.Term) {
	t.State.AddFact(head)
}

func (t *Target) AddRule(head *ast.Term, body []*ast.Term) {
	t.State.AddRule(head, body)
}

// Error wraps a single loader-time failure with the document position
// that caused it, matching the teacher's habit (loader.Result.merge, in
// the reference repo) of reporting every failure found rather than
// stopping at the first one.
type Error struct {
	Where string
	Err   error
}

func (e *Error) Error() string {
	return errors.Wrapf(e.Err, "%s", e.Where).Error()
}

func (e *Error) Unwrap() error { return e.Err }
