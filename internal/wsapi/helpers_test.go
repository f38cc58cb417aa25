package wsapi

import (
	"studiodash/internal/notify"
	"studiodash/internal/workspace"
)

type noopNotifier struct{}

func (noopNotifier) Notify(notify.Notification) {}

type captureMask struct{ into *workspace.ConfirmAction }

func (m captureMask) ShowMask(a workspace.ConfirmAction) { *m.into = a }
func (m captureMask) HideMask()                          {}
