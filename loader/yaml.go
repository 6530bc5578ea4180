package loader

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/domain"
)

// OperatorDoc is one operator entry in a YAML domain document.
type OperatorDoc struct {
	Head   TermSpec   `yaml:"head"`
	Add    []TermSpec `yaml:"add"`
	Del    []TermSpec `yaml:"del"`
	Hidden bool       `yaml:"hidden"`
}

// MethodDoc is one method entry. Type selects Normal/AllSetOf/AnySetOf;
// Else marks the method as the isDefault fallback of its group, matching
// the concrete syntax's `else` token (spec.md §6).
type MethodDoc struct {
	Head TermSpec   `yaml:"head"`
	If   []TermSpec `yaml:"if"`
	Do   []TermSpec `yaml:"do"`
	Type string     `yaml:"type"`
	Else bool       `yaml:"else"`
}

// RuleDoc is one non-fact rule entry: a head plus a conjunction body.
type RuleDoc struct {
	Head TermSpec   `yaml:"head"`
	Body []TermSpec `yaml:"body"`
}

// Document is the full structured-YAML domain + initial-state + goal
// file this package's reference loader consumes.
type Document struct {
	Operators []OperatorDoc `yaml:"operators"`
	Methods   []MethodDoc   `yaml:"methods"`
	Facts     []TermSpec    `yaml:"facts"`
	Rules     []RuleDoc     `yaml:"rules"`
	Goals     []TermSpec    `yaml:"goals"`
}

func methodType(s string) (domain.MethodType, error) {
	switch s {
	case "", "normal":
		return domain.Normal, nil
	case "allOf":
		return domain.AllSetOf, nil
	case "anyOf":
		return domain.AnySetOf, nil
	default:
		return domain.Normal, errors.Errorf("unrecognized method type %q", s)
	}
}

// LoadYAMLFile reads and applies a Document from path.
func LoadYAMLFile(factory *ast.TermFactory, target Loader, path string) ([]*ast.Term, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return LoadYAML(factory, target, f)
}

// LoadYAML decodes one Document from r and applies every entry to target,
// returning the document's goal task list. Every failure encountered is
// collected rather than stopping at the first (grounded on the teacher's
// loader.Result.merge pattern of accumulating errors across a multi-file
// load), then joined into one error.
func LoadYAML(factory *ast.TermFactory, target Loader, r io.Reader) ([]*ast.Term, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode domain document")
	}

	var errs []error

	for i, op := range doc.Operators {
		head, err := op.Head.Build(factory)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("operators[%d].head", i), Err: err})
			continue
		}
		adds, err := BuildAll(factory, op.Add)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("operators[%d].add", i), Err: err})
			continue
		}
		dels, err := BuildAll(factory, op.Del)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("operators[%d].del", i), Err: err})
			continue
		}
		if _, err := target.AddOperator(head, adds, dels, op.Hidden); err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("operators[%d]", i), Err: err})
		}
	}

	for i, m := range doc.Methods {
		head, err := m.Head.Build(factory)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("methods[%d].head", i), Err: err})
			continue
		}
		cond, err := BuildAll(factory, m.If)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("methods[%d].if", i), Err: err})
			continue
		}
		subtasks, err := BuildAll(factory, m.Do)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("methods[%d].do", i), Err: err})
			continue
		}
		mt, err := methodType(m.Type)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("methods[%d].type", i), Err: err})
			continue
		}
		target.AddMethod(head, cond, subtasks, mt, m.Else)
	}

	for i, fact := range doc.Facts {
		t, err := fact.Build(factory)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("facts[%d]", i), Err: err})
			continue
		}
		target.AddFact(t)
	}

	for i, r := range doc.Rules {
		head, err := r.Head.Build(factory)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("rules[%d].head", i), Err: err})
			continue
		}
		body, err := BuildAll(factory, r.Body)
		if err != nil {
			errs = append(errs, &Error{Where: fmt.Sprintf("rules[%d].body", i), Err: err})
			continue
		}
		target.AddRule(head, body)
	}

	goals, err := BuildAll(factory, doc.Goals)
	if err != nil {
		errs = append(errs, &Error{Where: "goals", Err: err})
	}

	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}
	return goals, nil
}
