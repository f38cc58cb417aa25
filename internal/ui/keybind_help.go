package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the transient help view shown after SPC.
// Displays SPC-prefixed bindings in a compact bar format, filtered by mode.
// When keyHandler is in leader mode with a buffer (e.g. "SPC w"), shows next-level hints.
func RenderKeybindHelp(keyHandler *KeyHandler, mode AppMode) string {
	if keyHandler == nil || keyHandler.Registry == nil {
		return ""
	}
	bindings := NewKeyMap(keyHandler.Registry, keyHandler, mode).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	helpModel := help.New()
	helpModel.Styles.ShortKey = Styles.Selected
	helpModel.Styles.ShortDesc = Styles.Hint
	helpModel.Styles.ShortSeparator = Styles.Hint

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1)

	prefix := keyHandler.LeaderSeq
	if len(keyHandler.Buffer) > 0 {
		prefix = joinSeq(keyHandler.Buffer)
	}
	return boxStyle.Render(Styles.Hint.Render(prefix) + " " + helpModel.ShortHelpView(bindings))
}
