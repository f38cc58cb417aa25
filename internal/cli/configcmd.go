package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration after merging defaults, the config file,
STUDIODASH_ environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := getEnv(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if e.cfg.FileUsed != "" {
				fmt.Fprintf(out, "# from %s\n", e.cfg.FileUsed)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(e.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
