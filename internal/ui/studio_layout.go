package ui

import (
	"studiodash/internal/layout"
)

// Frame limits for the studio layout.
const (
	sideBarWidth    = 3
	minSidePanel    = 16
	maxLeftPanel    = 40
	maxRightPanel   = 36
	minBottomPanel  = 4
	maxBottomPanel  = 14
	minCenterHeight = 3
)

type rect struct {
	x, y, w, h int
}

// frame computes every slot's rectangle for a width x height terminal.
// rightDocked is false when nothing is docked on the right, which collapses
// the right bar and panel.
func frame(width, height int, rightDocked bool) map[string]rect {
	leftW := clamp(width/4, minSidePanel, maxLeftPanel)
	rightW, rightBar := 0, 0
	if rightDocked {
		rightW, rightBar = clamp(width/5, minSidePanel, maxRightPanel), sideBarWidth
	}
	panesW := max(width-sideBarWidth-leftW-rightW-rightBar, 0)

	bottomH := clamp(height/3, minBottomPanel, maxBottomPanel)
	centerH := height - 4 - bottomH // menu, breadcrumbs, bottom bar, status
	if centerH < minCenterHeight {
		bottomH = max(bottomH-(minCenterHeight-centerH), 0)
		centerH = max(height-4-bottomH, 0)
	}
	y := 2
	return map[string]rect{
		"MENUBAR":      {0, 0, width, 1},
		"BREADCRUMBS":  {0, 1, width, 1},
		"BAR_LEFT":     {0, y, sideBarWidth, centerH},
		"PANEL_LEFT":   {sideBarWidth, y, leftW, centerH},
		"PANES":        {sideBarWidth + leftW, y, panesW, centerH},
		"PANEL_RIGHT":  {sideBarWidth + leftW + panesW, y, rightW, centerH},
		"BAR_RIGHT":    {width - rightBar, y, rightBar, centerH},
		"PANEL_BOTTOM": {0, y + centerH, width, bottomH},
		"BAR_BOTTOM":   {0, y + centerH + bottomH, width, 1},
		"STATUSBAR":    {0, y + centerH + bottomH + 1, width, 1},
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// StudioLayout is the IDE frame: the layout tree resolved to panels with
// bounds.
type StudioLayout struct {
	panels      []Panel
	focus       []string
	rightDocked bool
}

// Ensure StudioLayout implements Layout.
var _ Layout = (*StudioLayout)(nil)

// NewStudioLayout resolves every node of tree through r.
func NewStudioLayout(tree []layout.Node, r *Resolver) *StudioLayout {
	l := &StudioLayout{
		rightDocked: r.Container(layout.SideRight).Len() > 0,
	}
	for _, n := range tree {
		id := n.Descriptor.ID
		l.panels = append(l.panels, Panel{
			ID:       id,
			View:     r.Resolve(n.Descriptor),
			Bounds:   l.boundsOf(id),
			Bordered: n.Focusable,
		})
		if !n.Focusable {
			continue
		}
		if id == "PANEL_RIGHT" && !l.rightDocked {
			continue
		}
		l.focus = append(l.focus, id)
	}
	return l
}

func (l *StudioLayout) boundsOf(id string) BoundsFunc {
	return func(width, height int) (x, y, w, h int) {
		b := frame(width, height, l.rightDocked)[id]
		return b.x, b.y, b.w, b.h
	}
}

// Panels implements Layout.
func (l *StudioLayout) Panels() []Panel {
	return l.panels
}

// Panel implements Layout.
func (l *StudioLayout) Panel(id string) (Panel, bool) {
	for _, p := range l.panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// FocusOrder implements Layout.
func (l *StudioLayout) FocusOrder() []string {
	return l.focus
}

// Bordered reports whether panel id is drawn inside a border.
func (l *StudioLayout) Bordered(id string) bool {
	p, ok := l.Panel(id)
	return ok && p.Bordered
}
