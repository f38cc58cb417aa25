// Package layout classifies studio panel slots.
//
// A layout tree hands out PanelDescriptors; Classify turns each one into a
// Slot whose Kind selects the component rendered in that region. Content-type
// rules are checked before id rules, and anything unmatched becomes the
// placeholder slot.
package layout

import "strings"

// ContentType is the abstract content a panel slot asks for.
type ContentType string

const (
	ContentNone        ContentType = ""
	ContentMenuBar     ContentType = "MENUBAR"
	ContentBreadcrumbs ContentType = "BREADCRUMBS"
	ContentFileTree    ContentType = "FILETREE"
	ContentPanes       ContentType = "PANES"
	ContentStatusBar   ContentType = "STATUSBAR"
)

// ParseContentType maps a descriptor string to a ContentType.
// Unknown values map to ContentNone.
func ParseContentType(s string) ContentType {
	switch ct := ContentType(strings.ToUpper(strings.TrimSpace(s))); ct {
	case ContentMenuBar, ContentBreadcrumbs, ContentFileTree, ContentPanes, ContentStatusBar:
		return ct
	default:
		return ContentNone
	}
}

// Side is the edge a side bar or side panel is docked to.
type Side string

const (
	SideNone   Side = ""
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
)

// Sides lists the dockable edges in render order.
var Sides = []Side{SideLeft, SideRight, SideBottom}

// PanelDescriptor identifies one layout slot. It is immutable per render.
type PanelDescriptor struct {
	ContentType ContentType
	ID          string
}

// SlotKind enumerates every component a slot can resolve to.
type SlotKind int

const (
	SlotPlaceholder SlotKind = iota
	SlotMenuBar
	SlotBreadcrumbs
	SlotFileTree
	SlotPanes
	SlotStatusBar
	SlotSideBar
	SlotSidePanel

	// SlotKindCount is the number of slot kinds. Tables indexed by SlotKind
	// are sized with it so a new kind shows up as an empty entry.
	SlotKindCount
)

func (k SlotKind) String() string {
	switch k {
	case SlotPlaceholder:
		return "Placeholder"
	case SlotMenuBar:
		return "MenuBar"
	case SlotBreadcrumbs:
		return "Breadcrumbs"
	case SlotFileTree:
		return "FileTree"
	case SlotPanes:
		return "Panes"
	case SlotStatusBar:
		return "StatusBar"
	case SlotSideBar:
		return "SideBar"
	case SlotSidePanel:
		return "SidePanel"
	default:
		return "Unknown"
	}
}

// Slot is a classified descriptor. Side is set only for SlotSideBar and
// SlotSidePanel.
type Slot struct {
	Kind SlotKind
	Side Side
}

var contentRules = map[ContentType]SlotKind{
	ContentMenuBar:     SlotMenuBar,
	ContentBreadcrumbs: SlotBreadcrumbs,
	ContentFileTree:    SlotFileTree,
	ContentPanes:       SlotPanes,
	ContentStatusBar:   SlotStatusBar,
}

var idRules = map[string]Slot{
	"BAR_LEFT":     {Kind: SlotSideBar, Side: SideLeft},
	"BAR_RIGHT":    {Kind: SlotSideBar, Side: SideRight},
	"BAR_BOTTOM":   {Kind: SlotSideBar, Side: SideBottom},
	"PANEL_LEFT":   {Kind: SlotSidePanel, Side: SideLeft},
	"PANEL_RIGHT":  {Kind: SlotSidePanel, Side: SideRight},
	"PANEL_BOTTOM": {Kind: SlotSidePanel, Side: SideBottom},
}

// Classify resolves a descriptor to its slot. It is a pure function of
// ContentType, then ID.
func Classify(d PanelDescriptor) Slot {
	if kind, ok := contentRules[d.ContentType]; ok {
		return Slot{Kind: kind}
	}
	if s, ok := idRules[d.ID]; ok {
		return s
	}
	return Slot{Kind: SlotPlaceholder}
}
