package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the studiodash version and the commit it was built from.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "studiodash v%s\n", Version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commit %s\n", GitCommit)
		},
	}
}
