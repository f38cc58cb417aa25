package layout

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		d    PanelDescriptor
		want Slot
	}{
		{"menubar", PanelDescriptor{ContentType: ContentMenuBar}, Slot{Kind: SlotMenuBar}},
		{"breadcrumbs", PanelDescriptor{ContentType: ContentBreadcrumbs}, Slot{Kind: SlotBreadcrumbs}},
		{"filetree", PanelDescriptor{ContentType: ContentFileTree}, Slot{Kind: SlotFileTree}},
		{"panes", PanelDescriptor{ContentType: ContentPanes}, Slot{Kind: SlotPanes}},
		{"statusbar", PanelDescriptor{ContentType: ContentStatusBar}, Slot{Kind: SlotStatusBar}},
		{"bar left", PanelDescriptor{ID: "BAR_LEFT"}, Slot{Kind: SlotSideBar, Side: SideLeft}},
		{"bar right", PanelDescriptor{ID: "BAR_RIGHT"}, Slot{Kind: SlotSideBar, Side: SideRight}},
		{"bar bottom", PanelDescriptor{ID: "BAR_BOTTOM"}, Slot{Kind: SlotSideBar, Side: SideBottom}},
		{"panel left", PanelDescriptor{ID: "PANEL_LEFT"}, Slot{Kind: SlotSidePanel, Side: SideLeft}},
		{"panel right", PanelDescriptor{ID: "PANEL_RIGHT"}, Slot{Kind: SlotSidePanel, Side: SideRight}},
		{"panel bottom", PanelDescriptor{ID: "PANEL_BOTTOM"}, Slot{Kind: SlotSidePanel, Side: SideBottom}},
		// Content type wins over id.
		{"content before id", PanelDescriptor{ContentType: ContentFileTree, ID: "PANEL_LEFT"}, Slot{Kind: SlotFileTree}},
		{"unknown id", PanelDescriptor{ID: "PANEL_TOP"}, Slot{Kind: SlotPlaceholder}},
		{"empty", PanelDescriptor{}, Slot{Kind: SlotPlaceholder}},
		{"lowercase id", PanelDescriptor{ID: "bar_left"}, Slot{Kind: SlotPlaceholder}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.d); got != tt.want {
				t.Errorf("Classify(%+v) = %+v, want %+v", tt.d, got, tt.want)
			}
		})
	}
}

func TestParseContentType(t *testing.T) {
	if got := ParseContentType(" filetree "); got != ContentFileTree {
		t.Errorf("ParseContentType: got %q", got)
	}
	if got := ParseContentType("TERMINAL"); got != ContentNone {
		t.Errorf("unknown content type: got %q, want none", got)
	}
}

func TestSlotKind_StringCoversAllKinds(t *testing.T) {
	for k := SlotKind(0); k < SlotKindCount; k++ {
		if k.String() == "Unknown" {
			t.Errorf("SlotKind %d has no name", k)
		}
	}
}

func TestDefaultTree_EverySlotResolves(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range DefaultTree() {
		if seen[n.Descriptor.ID] {
			t.Errorf("duplicate node id %q", n.Descriptor.ID)
		}
		seen[n.Descriptor.ID] = true
		if Classify(n.Descriptor).Kind == SlotPlaceholder {
			t.Errorf("node %q resolves to placeholder", n.Descriptor.ID)
		}
	}
}
