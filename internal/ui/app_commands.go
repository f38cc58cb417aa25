package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studiodash/internal/logging"
)

// defaultRequestTimeout bounds a list fetch when none is configured.
const defaultRequestTimeout = 15 * time.Second

// loadWorkspacesCmd fetches the workspace list in the background.
func loadWorkspacesCmd(ctx context.Context, svc WorkspaceService, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return WorkspacesLoadedMsg{}
		}
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		start := time.Now()
		listing, err := svc.ListWorkspaces(ctx)
		logging.FromContext(ctx).Debug("workspace list fetched",
			"count", len(listing.Workspaces), "duration", time.Since(start), "err", err)
		return WorkspacesLoadedMsg{Listing: listing, Err: err}
	}
}
