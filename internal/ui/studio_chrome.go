package ui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studiodash/internal/i18n"
	"studiodash/internal/layout"
	"studiodash/internal/notify"
	"studiodash/internal/ui/textutil"
)

// focusChangedMsg tells the chrome which panel has focus.
type focusChangedMsg struct {
	ID string
}

// PlaceholderView fills slots no component claims.
type PlaceholderView struct {
	Text string
}

func (p *PlaceholderView) Init() tea.Cmd { return nil }

func (p *PlaceholderView) Update(tea.Msg) (View, tea.Cmd) { return p, nil }

func (p *PlaceholderView) View() string { return Styles.Empty.Render(p.Text) }

// MenuBarView is the top menu line.
type MenuBarView struct {
	tr    i18n.Translator
	title string
	width int
}

func NewMenuBarView(tr i18n.Translator, title string) *MenuBarView {
	return &MenuBarView{tr: tr, title: title}
}

func (m *MenuBarView) Init() tea.Cmd { return nil }

func (m *MenuBarView) Update(msg tea.Msg) (View, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	return m, nil
}

func (m *MenuBarView) View() string {
	keys := []string{"menu.file", "menu.edit", "menu.view", "menu.git", "menu.help"}
	items := make([]string, len(keys))
	for i, k := range keys {
		items[i] = m.tr.T(k)
	}
	left := " " + strings.Join(items, "  ")
	right := Styles.Title.Render(m.title) + " "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return Styles.Bar.Width(m.width).Render(textutil.Truncate(left, m.width))
	}
	return Styles.Bar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// BreadcrumbsView shows the path of the file in front, relative to root.
type BreadcrumbsView struct {
	root    string
	current string
	width   int
}

func NewBreadcrumbsView(root string) *BreadcrumbsView {
	return &BreadcrumbsView{root: root}
}

func (b *BreadcrumbsView) Init() tea.Cmd { return nil }

func (b *BreadcrumbsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
	case OpenFileMsg:
		b.current = msg.Path
	case fileFrontMsg:
		b.current = msg.Path
	}
	return b, nil
}

// Crumbs returns the path segments shown.
func (b *BreadcrumbsView) Crumbs() []string {
	parts := []string{filepath.Base(b.root)}
	if b.current == "" {
		return parts
	}
	rel, err := filepath.Rel(b.root, b.current)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = b.current
	}
	for _, p := range strings.Split(filepath.ToSlash(rel), "/") {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}
	return parts
}

func (b *BreadcrumbsView) View() string {
	line := " " + strings.Join(b.Crumbs(), " › ")
	return Styles.Muted.Render(textutil.Truncate(line, max(b.width, 1)))
}

// StatusBarView shows the newest notification and the focused panel.
type StatusBarView struct {
	last  notify.Notification
	has   bool
	focus string
	width int
}

func NewStatusBarView() *StatusBarView {
	return &StatusBarView{}
}

func (s *StatusBarView) Init() tea.Cmd { return nil }

func (s *StatusBarView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case notify.Notification:
		s.last, s.has = msg, true
	case focusChangedMsg:
		s.focus = msg.ID
	}
	return s, nil
}

func (s *StatusBarView) View() string {
	right := ""
	if s.focus != "" {
		right = strings.ToLower(s.focus) + " "
	}
	left := ""
	if s.has {
		left = " " + typeIcon(s.last) + " " + s.last.Message
	}
	avail := s.width - lipgloss.Width(right)
	left = textutil.PadRightVisual(left, max(avail, 0))
	style := Styles.Bar
	if s.has && s.last.IsError() {
		style = style.Foreground(lipgloss.Color(ColorDanger))
	}
	return style.Width(max(s.width, 0)).Render(left + right)
}

// SideBarView is the activity bar of one side: a tab strip over the same
// container the side panel shows.
type SideBarView struct {
	container *SidePanelContainer
	width     int
	height    int
}

func NewSideBarView(c *SidePanelContainer) *SideBarView {
	return &SideBarView{container: c}
}

func (b *SideBarView) Init() tea.Cmd { return nil }

func (b *SideBarView) Update(msg tea.Msg) (View, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		b.width, b.height = ws.Width, ws.Height
	}
	return b, nil
}

func (b *SideBarView) View() string {
	if b.container == nil || b.container.Len() == 0 {
		return ""
	}
	if b.container.Side() == layout.SideBottom {
		return b.container.TabStrip()
	}
	// Vertical bars show one icon per line.
	lines := make([]string, 0, b.container.Len())
	for _, e := range b.container.Entries() {
		icon := e.Label.Icon
		if icon == "" {
			icon = textutil.Truncate(e.Label.Text, 1)
		}
		if e.Active {
			lines = append(lines, Styles.Selected.Render(icon))
		} else {
			lines = append(lines, Styles.Muted.Render(icon))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
