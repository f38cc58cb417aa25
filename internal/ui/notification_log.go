package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studiodash/internal/notify"
)

// maxLogEntries caps the notification history.
const maxLogEntries = 200

// NotificationLog keeps every notification of the session with scrollback.
// Shown as an overlay on SPC n; Esc dismisses.
type NotificationLog struct {
	entries  []notify.Notification
	viewport viewport.Model
}

// Ensure NotificationLog implements View.
var _ View = (*NotificationLog)(nil)

const defaultLogWidth = 70
const defaultLogHeight = 18

// NewNotificationLog creates an empty log.
func NewNotificationLog() *NotificationLog {
	vp := viewport.New(defaultLogWidth, defaultLogHeight)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	l := &NotificationLog{viewport: vp}
	l.refreshContent()
	return l
}

// Add appends n to the history.
func (l *NotificationLog) Add(n notify.Notification) {
	l.entries = append(l.entries, n)
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
	l.refreshContent()
}

// Entries returns the history, oldest first.
func (l *NotificationLog) Entries() []notify.Notification {
	return l.entries
}

// Last returns the newest notification.
func (l *NotificationLog) Last() (notify.Notification, bool) {
	if len(l.entries) == 0 {
		return notify.Notification{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Init implements View.
func (l *NotificationLog) Init() tea.Cmd {
	return l.viewport.Init()
}

// Update implements View.
func (l *NotificationLog) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case notify.Notification:
		l.Add(msg)
		return l, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return l, func() tea.Msg { return DismissModalMsg{} }
		}
	case tea.WindowSizeMsg:
		// Use a portion of the window for the overlay
		w := msg.Width - 4
		h := msg.Height/2 + 4
		if w < 40 {
			w = 40
		}
		if h < 12 {
			h = 12
		}
		l.viewport.Width = w
		l.viewport.Height = h
		l.refreshContent()
		return l, nil
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd
}

// View implements View.
func (l *NotificationLog) View() string {
	header := Styles.Title.Render("Notifications") + Styles.Hint.Render("  Esc: close")
	return header + "\n" + l.viewport.View()
}

func (l *NotificationLog) refreshContent() {
	lines := make([]string, 0, len(l.entries))
	for _, n := range l.entries {
		line := fmt.Sprintf("[%s] %s %s", n.Timestamp.Format("15:04:05"), typeIcon(n), n.Message)
		if n.IsError() {
			line = Styles.Error.Render(line)
		}
		lines = append(lines, line)
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = Styles.Empty.Render("No notifications yet")
	}
	l.viewport.SetContent(content)
	l.viewport.GotoBottom()
}

func typeIcon(n notify.Notification) string {
	if n.IsError() {
		return "✗"
	}
	return "•"
}
