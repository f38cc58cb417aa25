package workspace

import (
	"context"
	"errors"
	"fmt"

	"studiodash/internal/i18n"
)

// Action is a card command that needs confirmation.
type Action int

const (
	ActionNone Action = iota
	ActionStop
	ActionDelete
	ActionRestore
	// ActionStopAndOpen stops the already open workspace, then opens this one.
	ActionStopAndOpen
)

func (a Action) String() string {
	switch a {
	case ActionStop:
		return "stop"
	case ActionDelete:
		return "delete"
	case ActionRestore:
		return "restore"
	case ActionStopAndOpen:
		return "stop_and_open"
	default:
		return "none"
	}
}

// ConfirmAction describes one confirmation dialog. It is created per click
// and discarded once confirmed or cancelled.
type ConfirmAction struct {
	Action      Action
	Title       string
	Message     string
	IsWarn      bool
	ConfirmText string
	CancelText  string
	PendingText string
	// OnConfirm runs the action and blocks until it resolves.
	OnConfirm func(ctx context.Context) error
	// OnCancel returns the workflow to idle.
	OnCancel func()
}

// Result is the envelope every workspace API call answers with.
type Result struct {
	Code int
	Msg  string
}

// OK reports success. Code 0 is the only success code for every action.
func (r Result) OK() bool {
	return r.Code == 0
}

// API is the workspace service the workflow calls.
type API interface {
	QuitWorkspace(ctx context.Context, spaceKey string) (Result, error)
	DeleteWorkspace(ctx context.Context, spaceKey string) (Result, error)
	RestoreWorkspace(ctx context.Context, spaceKey string) (Result, error)
}

// Mask shows and hides the modal confirmation overlay.
type Mask interface {
	ShowMask(a ConfirmAction)
	HideMask()
}

// Opener opens a URL in a new browsing context.
type Opener interface {
	Open(url string) error
}

var (
	// ErrBusy is returned when an action is already being confirmed or run.
	ErrBusy = errors.New("workspace action already in progress")
	// ErrNotAllowed is returned for actions whose control is hidden.
	ErrNotAllowed = errors.New("action not available for this workspace")
	// ErrDisposed is returned once the workflow has been disposed.
	ErrDisposed = errors.New("workspace workflow disposed")
)

// LogicalError is a well-formed API answer with a non-success code.
type LogicalError struct {
	Action Action
	Code   int
	Msg    string
}

func (e *LogicalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s failed with code %d", e.Action, e.Code)
}

// confirmTexts maps each action to its catalog keys.
var confirmTexts = map[Action]struct {
	message, confirm, cancel, pending string
	warn                              bool
}{
	ActionStop:        {"ws.stopNotice", "global.stop", "global.cancel", "global.stoping", true},
	ActionDelete:      {"ws.deleteNotice", "global.delete", "global.cancel", "global.deleting", true},
	ActionRestore:     {"ws.restoreNotice", "global.restore", "global.cancel", "global.restoring", false},
	ActionStopAndOpen: {"ws.hasWSOpendNotice", "global.stop", "global.ok", "global.stoping", true},
}

func newConfirmAction(a Action, title string, tr i18n.Translator) ConfirmAction {
	t := confirmTexts[a]
	return ConfirmAction{
		Action:      a,
		Title:       title,
		Message:     tr.T(t.message),
		IsWarn:      t.warn,
		ConfirmText: tr.T(t.confirm),
		CancelText:  tr.T(t.cancel),
		PendingText: tr.T(t.pending),
	}
}
