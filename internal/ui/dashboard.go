package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studiodash/internal/i18n"
	"studiodash/internal/notify"
	"studiodash/internal/ui/textutil"
	"studiodash/internal/workspace"
)

// cardItem implements list.DefaultItem for a workspace card.
type cardItem struct {
	card workspace.Card
	busy bool
	tr   i18n.Translator
	now  time.Time
}

func (c cardItem) FilterValue() string { return c.card.Title() }

func (c cardItem) Title() string {
	var b strings.Builder
	switch {
	case c.card.Invalid():
		b.WriteString("✗ ")
	case c.card.Online():
		b.WriteString(Styles.Online.Render("●") + " ")
	default:
		b.WriteString("○ ")
	}
	b.WriteString(c.card.Title())
	if c.card.Online() {
		b.WriteString("  " + c.tr.T("global.running"))
	}
	if c.card.Collaborative {
		b.WriteString("  [" + c.tr.T("global.collaborating") + "]")
	}
	if c.busy {
		b.WriteString("  …")
	}
	return b.String()
}

func (c cardItem) Description() string {
	parts := []string{}
	if d := c.card.Description(c.tr, c.now); d != "" {
		parts = append(parts, d)
	}
	var controls []string
	if c.card.ShowStop() {
		controls = append(controls, "s:"+c.tr.T("global.stop"))
	}
	if c.card.ShowDelete() {
		controls = append(controls, "d:"+c.tr.T("global.delete"))
	}
	if c.card.ShowRestore() {
		controls = append(controls, "r:"+c.tr.T("global.restore"))
	}
	if len(controls) > 0 {
		parts = append(parts, strings.Join(controls, " "))
	}
	return strings.Join(parts, "  ·  ")
}

// DashboardView lists workspace cards. Each card owns a workflow that runs
// its stop/delete/restore actions.
type DashboardView struct {
	list      list.Model
	spinner   spinner.Model
	loading   bool
	loadErr   string
	cards     []workspace.Card
	workflows map[string]*workspace.Workflow
	deps      workspace.Deps
	tr        i18n.Translator
	now       func() time.Time
}

// Ensure DashboardView implements View.
var _ View = (*DashboardView)(nil)

// NewDashboardView creates a dashboard. deps is the template every card
// workflow is built from; cards arrive via SetCards.
func NewDashboardView(deps workspace.Deps) *DashboardView {
	if deps.Translator == nil {
		deps.Translator = i18n.Default()
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = Styles.Selected
	delegate.Styles.SelectedDesc = Styles.Selected.Bold(false)
	delegate.Styles.NormalTitle = Styles.Normal
	delegate.Styles.NormalDesc = Styles.Muted

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	return &DashboardView{
		list:      l,
		spinner:   s,
		workflows: map[string]*workspace.Workflow{},
		deps:      deps,
		tr:        deps.Translator,
		now:       time.Now,
	}
}

// Cards returns the cards currently shown.
func (d *DashboardView) Cards() []workspace.Card {
	return d.cards
}

// Selected returns the index of the currently selected card.
func (d *DashboardView) Selected() int {
	return d.list.Index()
}

// SelectedCard returns the highlighted card.
func (d *DashboardView) SelectedCard() (workspace.Card, bool) {
	i := d.list.Index()
	if i < 0 || i >= len(d.cards) {
		return workspace.Card{}, false
	}
	return d.cards[i], true
}

// Workflow returns the workflow of spaceKey, or nil.
func (d *DashboardView) Workflow(spaceKey string) *workspace.Workflow {
	return d.workflows[spaceKey]
}

// SetCards replaces the cards. Workflows of surviving cards keep their
// state; workflows of cards that disappeared are disposed.
func (d *DashboardView) SetCards(cards []workspace.Card) {
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		seen[c.SpaceKey] = true
		if wf, ok := d.workflows[c.SpaceKey]; ok {
			wf.SetCard(c)
			continue
		}
		d.workflows[c.SpaceKey] = workspace.NewWorkflow(c, d.deps)
	}
	for key, wf := range d.workflows {
		if !seen[key] {
			wf.Dispose()
			delete(d.workflows, key)
		}
	}
	d.cards = cards
	d.loadErr = ""
	d.refreshItems()
}

// SetError records a failed load; the previous cards stay visible.
func (d *DashboardView) SetError(err error) {
	d.loadErr = err.Error()
}

// Dispose ends every card workflow.
func (d *DashboardView) Dispose() {
	for key, wf := range d.workflows {
		wf.Dispose()
		delete(d.workflows, key)
	}
}

// Init implements View.
func (d *DashboardView) Init() tea.Cmd {
	return d.spinner.Tick
}

// SetLoading sets the loading state and returns a command to start/stop spinner.
func (d *DashboardView) SetLoading(loading bool) tea.Cmd {
	d.loading = loading
	if loading {
		return d.spinner.Tick
	}
	return nil
}

// Request runs action a on the selected card.
func (d *DashboardView) Request(a workspace.Action) {
	card, ok := d.SelectedCard()
	if !ok {
		return
	}
	if wf := d.workflows[card.SpaceKey]; wf != nil {
		d.report(wf.Request(a))
	}
	d.refreshItems()
}

// Activate opens the selected card, or asks to stop the open workspace.
func (d *DashboardView) Activate() {
	card, ok := d.SelectedCard()
	if !ok {
		return
	}
	wf := d.workflows[card.SpaceKey]
	if wf == nil {
		return
	}
	nav, err := wf.Activate()
	if err != nil {
		d.report(err)
		return
	}
	if nav.Kind == workspace.NavOpen && d.deps.Notifier != nil {
		d.deps.Notifier.Notify(notify.Info(d.tr.Tf("ws.opened", nav.URL)))
	}
	d.refreshItems()
}

func (d *DashboardView) report(err error) {
	if err == nil || d.deps.Notifier == nil {
		return
	}
	msg := err.Error()
	switch {
	case errors.Is(err, workspace.ErrBusy):
		msg = d.tr.T("ws.busy")
	case errors.Is(err, workspace.ErrNotAllowed):
		msg = d.tr.T("ws.notAllowed")
	}
	d.deps.Notifier.Notify(notify.Error(msg))
}

// Update implements View.
func (d *DashboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.list.SetWidth(msg.Width)
		d.list.SetHeight(msg.Height - 4) // Reserve space for header and hint
		return d, nil
	case spinner.TickMsg:
		if d.loading {
			var cmd tea.Cmd
			d.spinner, cmd = d.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return d, tea.Batch(cmds...)
	case ShowMaskMsg, HideMaskMsg, confirmDoneMsg:
		d.refreshItems()
		return d, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			d.Activate()
			return d, nil
		case "s":
			d.Request(workspace.ActionStop)
			return d, nil
		case "d":
			d.Request(workspace.ActionDelete)
			return d, nil
		case "r":
			d.Request(workspace.ActionRestore)
			return d, nil
		case "R":
			return d, func() tea.Msg { return RefreshMsg{} }
		}
	}

	// Pass all other messages to list.Model - it handles j/k/g/G navigation natively.
	var cmd tea.Cmd
	d.list, cmd = d.list.Update(msg)
	cmds = append(cmds, cmd)
	return d, tea.Batch(cmds...)
}

// View implements View.
func (d *DashboardView) View() string {
	// Set default dimensions if not set (for tests)
	if d.list.Width() == 0 {
		d.list.SetWidth(80)
	}
	if d.list.Height() == 0 {
		d.list.SetHeight(20)
	}

	var b strings.Builder
	title := Styles.Title.Render(fmt.Sprintf("%s (%d)", d.tr.T("ws.title"), len(d.cards)))
	if d.loading {
		title += " " + d.spinner.View()
	}
	b.WriteString(title + "\n")
	b.WriteString(Styles.Hint.Render("enter: open  s/d/r: stop/delete/restore  R: "+d.tr.T("global.refresh")+"  [SPC] commands") + "\n")
	if d.loadErr != "" {
		b.WriteString(Styles.Error.Render(textutil.Truncate(d.loadErr, d.list.Width())))
	}
	b.WriteString("\n")
	if len(d.cards) == 0 {
		if d.loading {
			b.WriteString(Styles.Empty.Render(d.tr.T("global.loading")))
		} else {
			b.WriteString(Styles.Empty.Render(d.tr.T("ws.empty")))
		}
		return b.String()
	}
	b.WriteString(d.list.View())
	return lipgloss.NewStyle().MaxWidth(d.list.Width()).Render(b.String())
}

// refreshItems rebuilds the list items from cards and workflow state.
func (d *DashboardView) refreshItems() {
	now := d.now()
	items := make([]list.Item, len(d.cards))
	for i, c := range d.cards {
		busy := false
		if wf := d.workflows[c.SpaceKey]; wf != nil {
			busy = wf.Busy()
		}
		items[i] = cardItem{card: c, busy: busy, tr: d.tr, now: now}
	}
	d.list.SetItems(items)
}
