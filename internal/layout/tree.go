package layout

// Region is a coarse placement hint for a slot in the studio frame.
type Region int

const (
	RegionTop Region = iota
	RegionLeft
	RegionCenter
	RegionRight
	RegionBottom
	RegionFooter
)

// Node is one entry of the layout tree.
type Node struct {
	Descriptor PanelDescriptor
	Region     Region
	// Focusable nodes take part in tab focus rotation.
	Focusable bool
}

// DefaultTree returns the studio layout: menu and breadcrumbs on top, bars and
// side panels around the editor panes, a bottom panel and a status bar.
func DefaultTree() []Node {
	return []Node{
		{Descriptor: PanelDescriptor{ID: "MENUBAR", ContentType: ContentMenuBar}, Region: RegionTop},
		{Descriptor: PanelDescriptor{ID: "BREADCRUMBS", ContentType: ContentBreadcrumbs}, Region: RegionTop},
		{Descriptor: PanelDescriptor{ID: "BAR_LEFT"}, Region: RegionLeft},
		{Descriptor: PanelDescriptor{ID: "PANEL_LEFT"}, Region: RegionLeft, Focusable: true},
		{Descriptor: PanelDescriptor{ID: "PANES", ContentType: ContentPanes}, Region: RegionCenter, Focusable: true},
		{Descriptor: PanelDescriptor{ID: "PANEL_RIGHT"}, Region: RegionRight, Focusable: true},
		{Descriptor: PanelDescriptor{ID: "BAR_RIGHT"}, Region: RegionRight},
		{Descriptor: PanelDescriptor{ID: "PANEL_BOTTOM"}, Region: RegionBottom, Focusable: true},
		{Descriptor: PanelDescriptor{ID: "BAR_BOTTOM"}, Region: RegionBottom},
		{Descriptor: PanelDescriptor{ID: "STATUSBAR", ContentType: ContentStatusBar}, Region: RegionFooter},
	}
}
