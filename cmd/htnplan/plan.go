package htnplan

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/inductorhtn/htnplan/ast"
	"github.com/inductorhtn/htnplan/internal/logging"
	"github.com/inductorhtn/htnplan/internal/metrics"
	"github.com/inductorhtn/htnplan/loader"
	"github.com/inductorhtn/htnplan/planner"
)

type planParams struct {
	domainPath   string
	budget       int64
	maxSolutions int
	logLevel     string
	logFormat    string
	all          bool
}

func initPlan(rootCommand *cobra.Command) *cobra.Command {
	var params planParams

	planCommand := &cobra.Command{
		Use:   "plan <domain.yaml>",
		Short: "Search for a plan satisfying a domain's goals",
		Long: `Load a structured domain/state/goal document and run the planner.

Example:

	$ htnplan plan domain.yaml --budget 67108864
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.domainPath = args[0]
			v, err := bindConfig(cmd)
			if err != nil {
				return err
			}
			params.budget = v.GetInt64("budget")
			params.maxSolutions = v.GetInt("max-solutions")
			params.logLevel = v.GetString("log-level")
			params.logFormat = v.GetString("log-format")
			params.all = v.GetBool("all")
			return runPlan(params)
		},
	}

	planCommand.Flags().Int64Var(&params.budget, "budget", 64*1024*1024, "memory budget in bytes")
	planCommand.Flags().IntVar(&params.maxSolutions, "max-solutions", 0, "maximum number of solutions to enumerate with --all (0 = unbounded)")
	planCommand.Flags().StringVar(&params.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	planCommand.Flags().StringVar(&params.logFormat, "log-format", "json", "log format: json|json-pretty|text")
	planCommand.Flags().BoolVar(&params.all, "all", false, "enumerate all solutions instead of just the first")

	rootCommand.AddCommand(planCommand)
	return planCommand
}

func runPlan(params planParams) error {
	level, err := logging.GetLevel(params.logLevel)
	if err != nil {
		return err
	}
	log := logging.New(level, params.logFormat)

	factory := ast.NewTermFactory()
	target := loader.NewTarget()
	goals, err := loader.LoadYAMLFile(factory, target, params.domainPath)
	if err != nil {
		return errors.Wrap(err, "load domain")
	}

	p := planner.NewPlanner()
	p.Log = log
	p.Metrics = metrics.NewCollector(prometheus.NewRegistry())

	if params.all {
		sols, report, err := p.FindAllPlans(factory, target.Domain, target.State, goals, params.budget, params.maxSolutions)
		if len(sols) == 0 {
			return reportNoSolution(report, err)
		}
		for i, sol := range sols {
			fmt.Printf("solution %d:\n", i+1)
			printSolution(sol)
		}
		return err
	}

	sol, report, err := p.FindPlan(factory, target.Domain, target.State, goals, params.budget)
	if sol == nil {
		return reportNoSolution(report, err)
	}
	printSolution(sol)
	return err
}

func reportNoSolution(report *planner.FailureReport, err error) error {
	if err != nil {
		return err
	}
	if report == nil || report.DeepestDepth < 0 {
		return errors.New("no solution")
	}
	if report.Suggestion != "" {
		return errors.Errorf("no solution (deepest failure at depth %d, index %d: %v; did you mean %q?)",
			report.DeepestDepth, report.FurthestIndex, report.Context, report.Suggestion)
	}
	return errors.Errorf("no solution (deepest failure at depth %d, index %d: %v)",
		report.DeepestDepth, report.FurthestIndex, report.Context)
}

func printSolution(sol *planner.Solution) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "operator"})
	for i, op := range sol.Plan {
		table.Append([]string{fmt.Sprintf("%d", i+1), op.String()})
	}
	table.Render()
	fmt.Printf("elapsed: %.3fs  peak memory: %d bytes\n", sol.ElapsedSeconds, sol.HighestMemoryUsed)
}
