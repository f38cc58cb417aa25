package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studiodash/internal/layout"
)

// StudioView composes the IDE frame for a local directory. Tab and
// shift+tab rotate focus across the focusable panels; keys go to the
// focused panel, every other message reaches every panel.
type StudioView struct {
	resolver *Resolver
	layout   *StudioLayout
	views    map[string]View
	focus    FocusManager
	width    int
	height   int
}

// Ensure StudioView implements View.
var _ View = (*StudioView)(nil)

// NewStudioView builds the studio for env from the default layout tree.
func NewStudioView(env StudioEnv) *StudioView {
	r := NewResolver(env)
	l := NewStudioLayout(layout.DefaultTree(), r)
	s := &StudioView{
		resolver: r,
		layout:   l,
		views:    map[string]View{},
		width:    120,
		height:   40,
	}
	for _, p := range l.Panels() {
		s.views[p.ID] = p.View
	}
	s.focus = FocusManager{Order: l.FocusOrder(), Current: "PANES"}
	return s
}

// Layout returns the studio's layout.
func (s *StudioView) Layout() *StudioLayout {
	return s.layout
}

// Resolver returns the resolver the panels came from.
func (s *StudioView) Resolver() *Resolver {
	return s.resolver
}

// Focused returns the ID of the focused panel.
func (s *StudioView) Focused() string {
	return s.focus.Current
}

// Panel returns the view of panel id.
func (s *StudioView) Panel(id string) View {
	return s.views[id]
}

// CapturesInput reports whether the focused panel takes every key.
func (s *StudioView) CapturesInput() bool {
	return capturesInput(s.views[s.focus.Current])
}

func (s *StudioView) Init() tea.Cmd {
	cmds := []tea.Cmd{s.announceFocus()}
	for _, p := range s.layout.Panels() {
		cmds = append(cmds, s.views[p.ID].Init())
	}
	return tea.Batch(cmds...)
}

func (s *StudioView) announceFocus() tea.Cmd {
	id := s.focus.Current
	return func() tea.Msg { return focusChangedMsg{ID: id} }
}

func (s *StudioView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		return s, s.resize()
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.focus.Next()
			return s, s.announceFocus()
		case "shift+tab":
			s.focus.Prev()
			return s, s.announceFocus()
		}
		v, ok := s.views[s.focus.Current]
		if !ok {
			return s, nil
		}
		nv, cmd := v.Update(msg)
		s.views[s.focus.Current] = nv
		return s, cmd
	}
	return s, s.broadcast(msg)
}

func (s *StudioView) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range s.layout.Panels() {
		nv, cmd := s.views[p.ID].Update(msg)
		s.views[p.ID] = nv
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// resize sends each panel its inner size.
func (s *StudioView) resize() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range s.layout.Panels() {
		w, h := p.Inner(s.width, s.height)
		nv, cmd := s.views[p.ID].Update(tea.WindowSizeMsg{Width: w, Height: h})
		s.views[p.ID] = nv
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (s *StudioView) render(id string) string {
	p, ok := s.layout.Panel(id)
	if !ok {
		return ""
	}
	_, _, w, h := p.Bounds(s.width, s.height)
	if w <= 0 || h <= 0 {
		return ""
	}
	content := s.views[id].View()
	if !p.Bordered {
		return lipgloss.NewStyle().Width(w).Height(h).MaxWidth(w).MaxHeight(h).Render(content)
	}
	iw, ih := p.Inner(s.width, s.height)
	inner := lipgloss.NewStyle().Width(iw).Height(ih).MaxWidth(iw).MaxHeight(ih).Render(content)
	style := Styles.Panel
	if id == s.focus.Current {
		style = Styles.PanelFocused
	}
	return style.Render(inner)
}

func (s *StudioView) View() string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		s.render("BAR_LEFT"),
		s.render("PANEL_LEFT"),
		s.render("PANES"),
		s.render("PANEL_RIGHT"),
		s.render("BAR_RIGHT"),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		s.render("MENUBAR"),
		s.render("BREADCRUMBS"),
		middle,
		s.render("PANEL_BOTTOM"),
		s.render("BAR_BOTTOM"),
		s.render("STATUSBAR"),
	)
}

// Close releases the terminal shells.
func (s *StudioView) Close() {
	c := s.resolver.Container(layout.SideBottom)
	for _, e := range c.Entries() {
		if t, ok := e.Content.(*TerminalView); ok {
			_ = t.Close()
		}
	}
}
