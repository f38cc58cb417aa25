package ui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studiodash/internal/layout"
)

// SideViewLabel is the tab of a side panel entry.
type SideViewLabel struct {
	Text   string
	Icon   string
	Weight int
}

// SideViewEntry is one tab of a side panel container.
type SideViewEntry struct {
	Key     string
	Label   SideViewLabel
	Active  bool
	Content View
}

// SidePanelContainer hosts the tabbed views docked to one side. Exactly one
// entry is active whenever any exist.
type SidePanelContainer struct {
	side    layout.Side
	entries []SideViewEntry
	active  string
	width   int
	height  int
}

// Ensure SidePanelContainer implements View.
var _ View = (*SidePanelContainer)(nil)

// NewSidePanelContainer orders entries by weight (heaviest first, ties in
// declaration order) and drops later entries that repeat a key. The first
// entry declared Active wins; otherwise the first in display order is
// activated.
func NewSidePanelContainer(side layout.Side, entries ...SideViewEntry) *SidePanelContainer {
	seen := map[string]bool{}
	kept := make([]SideViewEntry, 0, len(entries))
	c := &SidePanelContainer{side: side}
	for _, e := range entries {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		kept = append(kept, e)
		if e.Active && c.active == "" {
			c.active = e.Key
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Label.Weight > kept[j].Label.Weight
	})
	c.entries = kept
	if c.active == "" && len(kept) > 0 {
		c.active = kept[0].Key
	}
	c.syncActive()
	return c
}

// Side returns the edge the container is docked to.
func (c *SidePanelContainer) Side() layout.Side {
	return c.side
}

// Entries returns the entries in display order.
func (c *SidePanelContainer) Entries() []SideViewEntry {
	return c.entries
}

// Len returns the number of entries.
func (c *SidePanelContainer) Len() int {
	return len(c.entries)
}

// ActiveKey returns the key of the active entry, or "" when empty.
func (c *SidePanelContainer) ActiveKey() string {
	return c.active
}

// Activate makes key the only active entry. Unknown keys are rejected.
func (c *SidePanelContainer) Activate(key string) bool {
	if c.index(key) < 0 {
		return false
	}
	c.active = key
	c.syncActive()
	return true
}

// Next activates the following entry, wrapping around.
func (c *SidePanelContainer) Next() {
	c.rotate(1)
}

// Prev activates the preceding entry, wrapping around.
func (c *SidePanelContainer) Prev() {
	c.rotate(-1)
}

func (c *SidePanelContainer) rotate(step int) {
	n := len(c.entries)
	if n == 0 {
		return
	}
	i := c.index(c.active)
	c.active = c.entries[((i+step)%n+n)%n].Key
	c.syncActive()
}

func (c *SidePanelContainer) index(key string) int {
	for i, e := range c.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func (c *SidePanelContainer) syncActive() {
	for i := range c.entries {
		c.entries[i].Active = c.entries[i].Key == c.active
	}
}

func (c *SidePanelContainer) activeEntry() *SideViewEntry {
	if i := c.index(c.active); i >= 0 {
		return &c.entries[i]
	}
	return nil
}

// CapturesInput reports whether the active content takes every key.
func (c *SidePanelContainer) CapturesInput() bool {
	e := c.activeEntry()
	return e != nil && capturesInput(e.Content)
}

// Init implements View. Every entry is initialised so background loads start
// before a tab is first shown.
func (c *SidePanelContainer) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range c.entries {
		if e.Content != nil {
			cmds = append(cmds, e.Content.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Update implements View. Keys reach the active entry only; [ and ] switch
// tabs unless the active content captures input, alt+[ and alt+] always do.
// Other messages reach every entry so background loads complete on hidden
// tabs.
func (c *SidePanelContainer) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "alt+]":
			c.Next()
			return c, nil
		case "alt+[":
			c.Prev()
			return c, nil
		}
		if !c.CapturesInput() {
			switch msg.String() {
			case "]":
				c.Next()
				return c, nil
			case "[":
				c.Prev()
				return c, nil
			}
		}
		e := c.activeEntry()
		if e == nil || e.Content == nil {
			return c, nil
		}
		var cmd tea.Cmd
		e.Content, cmd = e.Content.Update(msg)
		return c, cmd
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-1, 0)}
		return c, c.broadcast(inner)
	}
	return c, c.broadcast(msg)
}

func (c *SidePanelContainer) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range c.entries {
		if c.entries[i].Content == nil {
			continue
		}
		var cmd tea.Cmd
		c.entries[i].Content, cmd = c.entries[i].Content.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View implements View: a tab header plus the active content.
func (c *SidePanelContainer) View() string {
	if len(c.entries) == 0 {
		return ""
	}
	header := c.TabStrip()
	body := ""
	if e := c.activeEntry(); e != nil && e.Content != nil {
		body = e.Content.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// TabStrip renders the entry labels in one line, the active one highlighted.
func (c *SidePanelContainer) TabStrip() string {
	tabs := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		text := strings.TrimSpace(e.Label.Icon + " " + e.Label.Text)
		if e.Active {
			tabs = append(tabs, Styles.TabActive.Render(text))
		} else {
			tabs = append(tabs, Styles.Tab.Render(text))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
