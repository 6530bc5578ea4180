package htnplan

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags, matching the teacher's
// convention of a package-level var; local builds report "dev".
var Version = "dev"

func initVersion(rootCommand *cobra.Command) *cobra.Command {
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Print the htnplan version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(Version)
			return nil
		},
	}
	rootCommand.AddCommand(versionCommand)
	return versionCommand
}
