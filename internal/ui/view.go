package ui

import tea "github.com/charmbracelet/bubbletea"

// View is implemented by the dashboard, the studio, every studio panel and
// the overlays.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// inputCapturer is implemented by views that take every key while focused
// (text inputs, terminals). Leader and quit keys are not intercepted then.
type inputCapturer interface {
	CapturesInput() bool
}

// capturesInput reports whether v currently takes every key.
func capturesInput(v View) bool {
	ic, ok := v.(inputCapturer)
	return ok && ic.CapturesInput()
}
