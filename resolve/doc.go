// Package resolve implements GoalResolver: SLD resolution of a conjunction
// of goal terms against a state.RuleSet, per spec.md §4.4.
//
// Supported built-ins (spec.md §9's "resolver contract" open question,
// decided in SPEC_FULL.md Part E):
//
//   - unification of a goal against facts and non-fact rules (standard
//     SLD resolution, clauses standardized apart on each use);
//   - conjunction, with cartesian combination of per-goal binding sets and
//     a conflict check on shared variables;
//   - arithmetic comparison (`< > <= >= =:= =\=`) and `is`-style
//     evaluation, delegated to ast.ResolveArithmeticTerms;
//   - negation-as-failure via the reserved wrapper goal `not(Goal)`.
//
// Not supported: assert/retract from within a goal (RuleSet mutation is a
// planner-level concern, applied only through operator add/delete lists),
// and cut. Occurs-check is omitted, matching unify.Unify.
package resolve
