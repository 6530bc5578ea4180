package htnplan

import (
	"strings"
	"testing"

	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/planner"
)

func TestReportNoSolutionPrefersUnderlyingError(t *testing.T) {
	want := &planner.Error{Code: planner.OutOfMemory, Message: "out of memory"}
	if got := reportNoSolution(nil, want); got != want {
		t.Fatalf("reportNoSolution() = %v, want the underlying error unchanged", got)
	}
}

func TestReportNoSolutionWithNilReport(t *testing.T) {
	err := reportNoSolution(nil, nil)
	if err == nil || err.Error() != "no solution" {
		t.Fatalf("reportNoSolution(nil, nil) = %v, want \"no solution\"", err)
	}
}

func TestReportNoSolutionIncludesSuggestion(t *testing.T) {
	f := ast.NewTermFactory()
	report := &planner.FailureReport{
		DeepestDepth:  2,
		FurthestIndex: 0,
		Context:       []*ast.Term{f.CreateConstant("mvoe")},
		Suggestion:    "move",
	}
	err := reportNoSolution(report, nil)
	if err == nil {
		t.Fatalf("expected a non-nil error")
	}
	if !strings.Contains(err.Error(), `did you mean "move"?`) {
		t.Fatalf("reportNoSolution() = %q, want it to mention the suggestion", err.Error())
	}
}

func TestReportNoSolutionOmitsSuggestionWhenEmpty(t *testing.T) {
	report := &planner.FailureReport{DeepestDepth: 1, FurthestIndex: 0}
	err := reportNoSolution(report, nil)
	if err == nil {
		t.Fatalf("expected a non-nil error")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("reportNoSolution() = %q, want no suggestion clause", err.Error())
	}
}
