// Package domain stores a planning domain's methods (indexed by head
// UniqueID, per spec.md §4.5) and operators (indexed by name, at most one
// per name).
package domain

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agnivade/levenshtein"

	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/internal/util"
	"github.com/inductorhtn/htnplan/unify"
)

// Error is a loader-time error: a duplicate operator name or a malformed
// condition/task list. Planning is never attempted once a loader error has
// occurred (spec.md §7.1).
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// methodLookupCacheSize bounds the domain's memoized MethodsFor results.
// Loading a domain always calls AddMethod before any search begins, and
// AddMethod invalidates the cache outright, so a bounded LRU here only
// trades a little memory for avoiding repeated full-map scans against the
// same recurring compound task across a long search — it is never stale.
const methodLookupCacheSize = 4096

// Domain holds every method and operator loaded for one planning problem.
type Domain struct {
	// methods indexes methods by their exact head term, using the head's
	// interned UniqueID for both equality and hashing (see
	// internal/util.HashMap). It serves exact-head lookups (MethodsWithExactHead);
	// MethodsFor below does its own unify-based scan over allMethods, since a
	// task's literal variables almost never share a UniqueID with a stored
	// method head's.
	methods       *util.HashMap[*ast.Term, []*Method]
	allMethods    []*Method
	nextDocOrder  int
	operators     map[string]*Operator
	operatorNames []string // document order, for suggestion ranking
	lookupCache   *lru.Cache[ast.UniqueID, []*Method]
}

// NewDomain returns an empty Domain.
func NewDomain() *Domain {
	cache, _ := lru.New[ast.UniqueID, []*Method](methodLookupCacheSize)
	return &Domain{
		methods: util.NewHashMap[*ast.Term, []*Method](
			func(a, b *ast.Term) bool { return a.Equal(b) },
			func(a *ast.Term) int { return int(a.UniqueID()) },
		),
		operators:   make(map[string]*Operator),
		lookupCache: cache,
	}
}

// AddMethod always succeeds and assigns the next document order.
func (d *Domain) AddMethod(head *ast.Term, condition, subtasks []*ast.Term, methodType MethodType, isDefault bool) *Method {
	m := &Method{
		Head:          head,
		Condition:     condition,
		Subtasks:      subtasks,
		Type:          methodType,
		IsDefault:     isDefault,
		DocumentOrder: d.nextDocOrder,
	}
	d.nextDocOrder++
	existing, _ := d.methods.Get(head)
	d.methods.Put(head, append(existing, m))
	d.allMethods = append(d.allMethods, m)
	d.lookupCache.Purge()
	return m
}

// MethodsWithExactHead returns the methods registered under a head
// structurally identical to head, via the O(1) interned-term index rather
// than MethodsFor's full unify scan. Useful for domain introspection (e.g.
// a loader or CLI reporting how many methods decompose one ground task)
// where the caller already has the exact head term in hand.
func (d *Domain) MethodsWithExactHead(head *ast.Term) []*Method {
	m, _ := d.methods.Get(head)
	return m
}

// AddOperator rejects a duplicate operator name with a loader Error
// (SPEC_FULL.md Part D.6, this module's own check). The message gains a
// "did you mean" suffix only when the nearest known name differs from the
// rejected one; for an exact duplicate the nearest known name is the
// rejected name itself, so the message carries no suggestion.
func (d *Domain) AddOperator(head *ast.Term, additions, deletions []*ast.Term, hidden bool) (*Operator, error) {
	name := head.Name()
	if _, exists := d.operators[name]; exists {
		return nil, &Error{Message: fmt.Sprintf(
			"duplicate operator %q; operator names must be unique%s",
			name, suggestionSuffix(name, d.operatorNames))}
	}
	op := &Operator{Head: head, Additions: additions, Deletions: deletions, Hidden: hidden}
	d.operators[name] = op
	d.operatorNames = append(d.operatorNames, name)
	return op, nil
}

// OperatorFor returns the operator registered under name, if any.
func (d *Domain) OperatorFor(name string) (*Operator, bool) {
	op, ok := d.operators[name]
	return op, ok
}

// SuggestOperatorName returns the closest known operator name to an
// unrecognized primitive task name, or "" if the domain has no operators
// within a useful edit distance. Used for the §7.2 "no solution"
// diagnostic.
func (d *Domain) SuggestOperatorName(name string) string {
	return nearest(name, d.operatorNames)
}

func suggestionSuffix(name string, known []string) string {
	if n := nearest(name, known); n != "" && n != name {
		return fmt.Sprintf(" (did you mean %q?)", n)
	}
	return ""
}

func nearest(name string, known []string) string {
	best := ""
	bestDist := -1
	for _, k := range known {
		dist := levenshtein.ComputeDistance(name, k)
		if bestDist == -1 || dist < bestDist {
			best, bestDist = k, dist
		}
	}
	if bestDist < 0 || bestDist > len(name)/2+2 {
		return ""
	}
	return best
}

// MethodsFor returns every method whose head unifies with task, sorted by
// ascending DocumentOrder. Per spec.md §4.5, lookup is not an O(1) index
// hit on the task's own UniqueID (a task's literal variables almost never
// match a stored method head's literal variables) — the full method
// collection is scanned and each head is unified against the task. The
// per-task result is memoized in lookupCache, keyed by the task's
// UniqueID, until the next AddMethod call purges it.
func (d *Domain) MethodsFor(factory *ast.TermFactory, task *ast.Term) []*Method {
	if cached, ok := d.lookupCache.Get(task.UniqueID()); ok {
		return cached
	}
	var matches []*Method
	for _, m := range d.allMethods {
		if _, ok := unify.Unify(factory, task, m.Head); ok {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DocumentOrder < matches[j].DocumentOrder
	})
	d.lookupCache.Add(task.UniqueID(), matches)
	return matches
}
