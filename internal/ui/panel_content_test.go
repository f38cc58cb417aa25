package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodash/internal/layout"
)

func TestSlotBuilderTable_Complete(t *testing.T) {
	table := slotBuilderTable()
	for k := layout.SlotKind(0); k < layout.SlotKindCount; k++ {
		assert.NotNil(t, table[k], "no builder for %s", k)
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(StudioEnv{Root: t.TempDir(), Title: "demo"})

	tests := []struct {
		name string
		d    layout.PanelDescriptor
		want any
	}{
		{"menu", layout.PanelDescriptor{ContentType: layout.ContentMenuBar}, &MenuBarView{}},
		{"breadcrumbs", layout.PanelDescriptor{ContentType: layout.ContentBreadcrumbs}, &BreadcrumbsView{}},
		{"file tree", layout.PanelDescriptor{ContentType: layout.ContentFileTree}, &FileTreeView{}},
		{"panes", layout.PanelDescriptor{ContentType: layout.ContentPanes}, &PanesView{}},
		{"status", layout.PanelDescriptor{ContentType: layout.ContentStatusBar}, &StatusBarView{}},
		{"content beats id", layout.PanelDescriptor{ContentType: layout.ContentPanes, ID: "BAR_LEFT"}, &PanesView{}},
		{"side bar", layout.PanelDescriptor{ID: "BAR_BOTTOM"}, &SideBarView{}},
		{"side panel", layout.PanelDescriptor{ID: "PANEL_LEFT"}, &SidePanelContainer{}},
		{"unknown", layout.PanelDescriptor{ID: "SOMETHING_ELSE"}, &PlaceholderView{}},
		{"empty", layout.PanelDescriptor{}, &PlaceholderView{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, r.Resolve(tt.d))
		})
	}
}

func TestResolver_PlaceholderText(t *testing.T) {
	r := NewResolver(StudioEnv{Root: t.TempDir()})
	v := r.Resolve(layout.PanelDescriptor{ID: "NOPE"})
	assert.Contains(t, v.View(), "Panel Placeholder")
}

func TestResolver_BarAndPanelShareContainer(t *testing.T) {
	r := NewResolver(StudioEnv{Root: t.TempDir()})

	panel, ok := r.Resolve(layout.PanelDescriptor{ID: "PANEL_LEFT"}).(*SidePanelContainer)
	require.True(t, ok)
	bar, ok := r.Resolve(layout.PanelDescriptor{ID: "BAR_LEFT"}).(*SideBarView)
	require.True(t, ok)
	assert.Same(t, panel, bar.container)
	assert.Same(t, panel, r.Container(layout.SideLeft))

	require.True(t, panel.Activate("find"))
	assert.Contains(t, bar.View(), "⌕")
}

func TestResolver_SideEntries(t *testing.T) {
	r := NewResolver(StudioEnv{Root: t.TempDir()})

	left := r.Container(layout.SideLeft)
	assert.Equal(t, []string{"project", "working", "find"}, keysOf(left))
	assert.Equal(t, "project", left.ActiveKey())
	assert.IsType(t, &FileTreeView{}, left.Entries()[0].Content)

	bottom := r.Container(layout.SideBottom)
	assert.Equal(t, []string{"terminal", "gitGraph", "gitHistory"}, keysOf(bottom))
	assert.Equal(t, "terminal", bottom.ActiveKey())

	assert.Equal(t, 0, r.Container(layout.SideRight).Len())
}
