package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of aquascore.",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("aquascore CLI\n")
			cmd.Printf("  Version: %s\n", Version)
			cmd.Printf("  Commit:  %s\n", Commit)
			cmd.Printf("  Built:   %s\n", Date)
			cmd.Printf("  Runtime: %s\n", runtime.Version())
		},
	}
}
