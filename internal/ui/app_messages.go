package ui

import (
	"studiodash/internal/workspace"
	"studiodash/internal/wsapi"
)

// WorkspacesLoadedMsg carries a fresh workspace listing (or the error that
// prevented it).
type WorkspacesLoadedMsg struct {
	Listing wsapi.Listing
	Err     error
}

// RefreshMsg asks for the workspace list to be fetched again.
type RefreshMsg struct{}

// ShowMaskMsg opens the confirmation modal for a workspace action.
type ShowMaskMsg struct {
	Action workspace.ConfirmAction
}

// HideMaskMsg closes the confirmation modal.
type HideMaskMsg struct{}

// confirmDoneMsg reports that a confirmed action resolved. The workflow has
// already hidden the mask and notified; this only clears pending state.
type confirmDoneMsg struct {
	Err error
}

// RequestActionMsg runs a workspace action on the selected card (SPC w s/d/r).
type RequestActionMsg struct {
	Action workspace.Action
}

// SwitchModeMsg switches the top-level mode.
type SwitchModeMsg struct {
	Mode AppMode
}

// ShowNotificationsMsg opens the notification log overlay (SPC n).
type ShowNotificationsMsg struct{}

// DismissModalMsg is sent when user closes an overlay (Esc).
type DismissModalMsg struct{}

// OpenFileMsg asks the panes view to open a file preview.
type OpenFileMsg struct {
	Path string
}
