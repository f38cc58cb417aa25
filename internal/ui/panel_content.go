package ui

import (
	"studiodash/internal/i18n"
	"studiodash/internal/layout"
	"studiodash/internal/pty"
)

// StudioEnv is what studio panel contents are built from.
type StudioEnv struct {
	// Root is the directory the studio shows.
	Root       string
	Title      string
	Translator i18n.Translator
	// PTY spawns the terminal shell; nil disables the terminal.
	PTY pty.Runner
}

// slotBuilder constructs the view for one classified slot.
type slotBuilder func(r *Resolver, slot layout.Slot) View

// slotBuilderTable returns one builder per slot kind. The array is sized by
// SlotKindCount so a new kind without a builder is a nil entry.
func slotBuilderTable() [layout.SlotKindCount]slotBuilder {
	return [layout.SlotKindCount]slotBuilder{
		layout.SlotPlaceholder: func(r *Resolver, _ layout.Slot) View {
			return &PlaceholderView{Text: r.env.Translator.T("panel.placeholder")}
		},
		layout.SlotMenuBar: func(r *Resolver, _ layout.Slot) View {
			return NewMenuBarView(r.env.Translator, r.env.Title)
		},
		layout.SlotBreadcrumbs: func(r *Resolver, _ layout.Slot) View {
			return NewBreadcrumbsView(r.env.Root)
		},
		layout.SlotFileTree: func(r *Resolver, _ layout.Slot) View {
			return NewFileTreeView(r.env.Root, r.env.Translator)
		},
		layout.SlotPanes: func(r *Resolver, _ layout.Slot) View {
			return NewPanesView()
		},
		layout.SlotStatusBar: func(r *Resolver, _ layout.Slot) View {
			return NewStatusBarView()
		},
		layout.SlotSideBar: func(r *Resolver, slot layout.Slot) View {
			return NewSideBarView(r.Container(slot.Side))
		},
		layout.SlotSidePanel: func(r *Resolver, slot layout.Slot) View {
			return r.Container(slot.Side)
		},
	}
}

// Resolver maps panel descriptors to views. Side bars and side panels of
// the same side share one container.
type Resolver struct {
	env        StudioEnv
	builders   [layout.SlotKindCount]slotBuilder
	containers map[layout.Side]*SidePanelContainer
}

// NewResolver creates a resolver for env.
func NewResolver(env StudioEnv) *Resolver {
	if env.Translator == nil {
		env.Translator = i18n.Default()
	}
	return &Resolver{
		env:        env,
		builders:   slotBuilderTable(),
		containers: map[layout.Side]*SidePanelContainer{},
	}
}

// Resolve returns the view for d. Unmatched descriptors get the placeholder.
func (r *Resolver) Resolve(d layout.PanelDescriptor) View {
	slot := layout.Classify(d)
	b := r.builders[slot.Kind]
	if b == nil {
		b = r.builders[layout.SlotPlaceholder]
	}
	return b(r, slot)
}

// Container returns the side panel container of side, building it on first
// use.
func (r *Resolver) Container(side layout.Side) *SidePanelContainer {
	if c, ok := r.containers[side]; ok {
		return c
	}
	c := NewSidePanelContainer(side, r.sideEntries(side)...)
	r.containers[side] = c
	return c
}

func (r *Resolver) sideEntries(side layout.Side) []SideViewEntry {
	tr := r.env.Translator
	switch side {
	case layout.SideLeft:
		return []SideViewEntry{
			{
				Key:     "project",
				Label:   SideViewLabel{Text: tr.T("panel.left.project"), Icon: "▤", Weight: 2},
				Active:  true,
				Content: r.Resolve(layout.PanelDescriptor{ContentType: layout.ContentFileTree}),
			},
			{
				Key:     "working",
				Label:   SideViewLabel{Text: tr.T("panel.left.working"), Icon: "◧", Weight: 1},
				Content: NewWorkingView(r.env.Root, tr),
			},
			{
				Key:     "find",
				Label:   SideViewLabel{Text: tr.T("panel.left.find"), Icon: "⌕"},
				Content: NewSearchView(r.env.Root, tr),
			},
		}
	case layout.SideBottom:
		return []SideViewEntry{
			{
				Key:     "terminal",
				Label:   SideViewLabel{Text: tr.T("panel.bottom.terminal"), Icon: "›_", Weight: 2},
				Active:  true,
				Content: NewTerminalView(r.env.PTY, r.env.Root, tr),
			},
			{
				Key:     "gitGraph",
				Label:   SideViewLabel{Text: tr.T("panel.bottom.gitGraph"), Icon: "⑂"},
				Content: NewGitGraphView(r.env.Root, tr),
			},
			{
				Key:     "gitHistory",
				Label:   SideViewLabel{Text: tr.T("panel.bottom.history"), Icon: "◷"},
				Content: NewGitHistoryView(r.env.Root, tr),
			},
		}
	default:
		// Nothing is docked on the right.
		return nil
	}
}
