package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newStudioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "studio [dir]",
		Short: "Open the studio view on a local directory",
		Example: `  # Browse the current directory
  studiodash studio

  # Browse a checkout
  studiodash studio ~/src/webide`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := studioRoot(dir)
			if err != nil {
				return err
			}
			return runTUI(cmd, studioMode, abs)
		},
	}
}

// studioRoot resolves dir and checks that it is a directory.
func studioRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("studio root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("studio root %s is not a directory", abs)
	}
	return abs, nil
}
