// Package htnplan provides the command-line entry point for the planner
// library, structured the way the teacher's cmd package builds its
// command tree: one initX(rootCommand) constructor per subcommand, each
// owning its own cobra.Command value (plan and serve also own a params
// struct).
package htnplan

import (
	"github.com/spf13/cobra"
)

// Command builds (or extends) the root cobra command with every
// subcommand this binary provides.
func Command(rootCommand *cobra.Command) *cobra.Command {
	if rootCommand == nil {
		rootCommand = &cobra.Command{
			Use:   "htnplan",
			Short: "Hierarchical task network planner",
			Long:  "A memory-budgeted HTN planner over a Prolog-style logic core.",
		}
	}
	initPlan(rootCommand)
	initVersion(rootCommand)
	initServe(rootCommand)
	return rootCommand
}
