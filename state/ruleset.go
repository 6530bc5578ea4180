// Package state implements RuleSet: the planner's working memory of facts
// and Horn-clause rules, structured as an immutable locked base plus a
// per-backtrack-frame copy-on-write delta.
package state

import (
	"sort"
	"strconv"

	"github.com/inductorhtn/htnplan/ast"
)

// Rule is a head (a functor term) plus a body (a conjunction of goal
// terms). A Rule with an empty body is a Fact.
type Rule struct {
	Head *ast.Term
	Body []*ast.Term
}

// IsFact reports whether this rule is unconditional.
func (r *Rule) IsFact() bool { return len(r.Body) == 0 }

// index keys a rule by its head's name and arity, this module's own
// `(name, arity)` fact index (SPEC_FULL.md Part D.5): this lets the
// resolver skip unrelated rules without a full scan.
type index map[string][]*Rule

func indexKey(name string, arity int) string {
	return name + "/" + strconv.Itoa(arity)
}

// RuleSet is a collection of rules conceptually split into a locked base
// (installed once by the loader, shared by reference across every frame of
// a search) and a delta (this frame's own view). A bucket (all rules of one
// name/arity) is copied from base into delta the first time it is touched
// by this frame — classic copy-on-write — so untouched buckets cost nothing
// beyond the shared base pointer.
type RuleSet struct {
	base   *index // shared, read-only after Lock
	locked bool
	delta  index // touched buckets only; presence in the map means "touched"
}

// NewRuleSet returns an empty, loader-owned RuleSet. Call Lock once
// loading is complete and before the first search frame is created.
func NewRuleSet() *RuleSet {
	ix := make(index)
	return &RuleSet{base: &ix, delta: make(index)}
}

// Lock freezes the current contents (base + any delta written before
// locking) as the shared base every subsequent CreateCopy will reference.
func (rs *RuleSet) Lock() {
	if rs.locked {
		return
	}
	for k, v := range rs.delta {
		(*rs.base)[k] = append((*rs.base)[k], v...)
	}
	rs.delta = make(index)
	rs.locked = true
}

// AddFact adds an unconditional rule (a fact).
func (rs *RuleSet) AddFact(head *ast.Term) {
	rs.AddRule(head, nil)
}

// AddRule adds a rule with the given head and body to this frame's delta.
func (rs *RuleSet) AddRule(head *ast.Term, body []*ast.Term) {
	k := indexKey(head.Name(), head.Arity())
	rs.touch(k)
	rs.delta[k] = append(rs.delta[k], &Rule{Head: head, Body: body})
}

func (rs *RuleSet) touch(k string) {
	if _, ok := rs.delta[k]; ok {
		return
	}
	rs.delta[k] = append([]*Rule(nil), (*rs.base)[k]...)
}

// CreateCopy returns a new RuleSet that shares this RuleSet's locked base
// by reference and starts with its own copy of this RuleSet's touched
// buckets, so it sees the same rules until either side is updated.
// Ownership of the base is shared-by-all-holders (lifetime = longest
// holder); the returned RuleSet's delta is exclusively owned by the caller
// and is destroyed (garbage) when its owning frame is popped.
func (rs *RuleSet) CreateCopy() *RuleSet {
	if !rs.locked {
		rs.Lock()
	}
	delta := make(index, len(rs.delta))
	for k, v := range rs.delta {
		delta[k] = append([]*Rule(nil), v...)
	}
	return &RuleSet{base: rs.base, locked: true, delta: delta}
}

// RulesFor returns the rules whose head has the given name and arity, base
// order first, for untouched buckets returning the shared base slice
// directly (no copy).
func (rs *RuleSet) RulesFor(name string, arity int) []*Rule {
	k := indexKey(name, arity)
	if v, touched := rs.delta[k]; touched {
		return v
	}
	return (*rs.base)[k]
}

// AllRules returns every rule currently visible to this RuleSet. Bucket
// iteration order is not load order (Go map iteration), which is
// acceptable here: AllRules is used for diagnostics and ToStringFacts, not
// plan search (search always goes through RulesFor, which is load-ordered
// within a bucket).
func (rs *RuleSet) AllRules() []*Rule {
	seen := make(map[string]bool)
	var out []*Rule
	for k, v := range rs.delta {
		seen[k] = true
		out = append(out, v...)
	}
	for k, v := range *rs.base {
		if !seen[k] {
			out = append(out, v...)
		}
	}
	return out
}

// Update mutates this frame's delta: every fact matching a removal pattern
// (structural equality on the ground head) is deleted, then every addition
// is inserted. Matches spec.md §4.5's Update(factory, removals, additions).
func (rs *RuleSet) Update(removals, additions []*ast.Term) {
	for _, rem := range removals {
		rs.removeMatching(rem)
	}
	for _, add := range additions {
		rs.AddFact(add)
	}
}

func (rs *RuleSet) removeMatching(pattern *ast.Term) {
	k := indexKey(pattern.Name(), pattern.Arity())
	rs.touch(k)
	filtered := rs.delta[k][:0]
	for _, r := range rs.delta[k] {
		if r.IsFact() && r.Head.Equal(pattern) {
			continue
		}
		filtered = append(filtered, r)
	}
	rs.delta[k] = filtered
}

// ToStringFacts renders every visible fact (empty-body rule) as a sorted
// list of strings, used by tests to assert RuleSet equality independent of
// map iteration order.
func (rs *RuleSet) ToStringFacts() []string {
	var out []string
	for _, r := range rs.AllRules() {
		if r.IsFact() {
			out = append(out, r.Head.String())
		}
	}
	sort.Strings(out)
	return out
}
