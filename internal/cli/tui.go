package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"studiodash/internal/pty"
	"studiodash/internal/ui"
)

const (
	dashboardMode = ui.ModeDashboard
	studioMode    = ui.ModeStudio
)

// runTUI starts the full-screen program in mode with dir as the studio root.
func runTUI(cmd *cobra.Command, mode ui.AppMode, dir string) error {
	e, err := getEnv(cmd)
	if err != nil {
		return err
	}
	client, err := e.client()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	model := ui.NewAppModel(ui.Options{
		Service:        client,
		Viewer:         e.cfg.GlobalKey,
		Navigator:      e.navigator(),
		Opener:         newBrowserOpener(ctx, e.log),
		Translator:     e.tr,
		Logger:         e.log,
		RequestTimeout: e.cfg.RequestTimeout,
		Studio: ui.StudioEnv{
			Root:       dir,
			Title:      "studiodash",
			Translator: e.tr,
			PTY:        &pty.CreackPTY{},
		},
		StartMode: mode,
	})
	defer model.Close()

	e.log.Info("starting", "mode", mode.String(), "api_base", e.cfg.APIBase, "root", dir)
	p := tea.NewProgram(model.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		// An interrupt cancels ctx; that is a normal exit.
		if errors.Is(err, tea.ErrProgramKilled) && errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
