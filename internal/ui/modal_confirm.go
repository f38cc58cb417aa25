package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"studiodash/internal/workspace"
)

// ConfirmModal renders a workspace.ConfirmAction. Enter or y confirms;
// Esc cancels. While the action runs the modal shows the pending label and
// ignores further confirms.
type ConfirmModal struct {
	Action  workspace.ConfirmAction
	Pending bool
	ctx     context.Context
	spinner spinner.Model
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a modal for a. ctx bounds the confirmed request.
func NewConfirmModal(ctx context.Context, a workspace.ConfirmAction) *ConfirmModal {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status
	return &ConfirmModal{Action: a, ctx: ctx, spinner: s}
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case confirmDoneMsg:
		m.Pending = false
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "n":
			if m.Pending || m.Action.OnCancel == nil {
				return m, nil
			}
			cancel := m.Action.OnCancel
			return m, func() tea.Msg {
				cancel()
				return nil
			}
		case "enter", "y":
			if m.Pending || m.Action.OnConfirm == nil {
				return m, nil
			}
			m.Pending = true
			confirm, ctx := m.Action.OnConfirm, m.ctx
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				return confirmDoneMsg{Err: confirm(ctx)}
			})
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	box, title := Styles.Box, Styles.Title
	if m.Action.IsWarn {
		box, title = Styles.BoxDanger, Styles.TitleWarning
	}
	content := title.Render(m.Action.Title) + "\n\n"
	content += Styles.Label.Render(m.Action.Message) + "\n\n"
	if m.Pending {
		content += m.spinner.View() + " " + Styles.Status.Render(m.Action.PendingText)
	} else {
		content += Styles.Hint.Render("y/Enter: " + m.Action.ConfirmText + "  Esc: " + m.Action.CancelText)
	}
	return box.Render(content)
}
