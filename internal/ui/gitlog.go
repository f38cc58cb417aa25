package ui

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"studiodash/internal/i18n"
)

// gitTimeout bounds each git invocation.
const gitTimeout = 10 * time.Second

// gitLogLoadedMsg carries the output of one GitLogView's git command.
type gitLogLoadedMsg struct {
	view *GitLogView
	out  string
	err  error
}

// GitLogView shows the output of a read-only git log command for dir. R
// reloads it.
type GitLogView struct {
	dir      string
	args     []string
	tr       i18n.Translator
	viewport viewport.Model
	loaded   bool
	failed   bool
}

// Ensure GitLogView implements View.
var _ View = (*GitLogView)(nil)

// NewGitGraphView shows the commit graph.
func NewGitGraphView(dir string, tr i18n.Translator) *GitLogView {
	return newGitLogView(dir, tr, "log", "--graph", "--oneline", "--decorate", "--all", "-n", "300")
}

// NewGitHistoryView shows recent commits with author and relative date.
func NewGitHistoryView(dir string, tr i18n.Translator) *GitLogView {
	return newGitLogView(dir, tr, "log", "-n", "300", "--date=relative", "--format=%h  %<(14,trunc)%ad  %<(16,trunc)%an  %s")
}

func newGitLogView(dir string, tr i18n.Translator, args ...string) *GitLogView {
	return &GitLogView{dir: dir, args: args, tr: tr, viewport: viewport.New(60, 10)}
}

func (g *GitLogView) Init() tea.Cmd {
	return g.load()
}

func (g *GitLogView) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
		defer cancel()
		cmd := exec.CommandContext(ctx, "git", append([]string{"-C", g.dir, "--no-pager"}, g.args...)...)
		var stdout bytes.Buffer
		cmd.Stdout = &stdout
		err := cmd.Run()
		return gitLogLoadedMsg{view: g, out: strings.TrimRight(stdout.String(), "\n"), err: err}
	}
}

func (g *GitLogView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case gitLogLoadedMsg:
		if msg.view != g {
			return g, nil
		}
		g.loaded = true
		g.failed = msg.err != nil
		if g.failed {
			g.viewport.SetContent(Styles.Empty.Render(g.tr.T("git.notRepo")))
		} else {
			g.viewport.SetContent(msg.out)
		}
		return g, nil
	case tea.WindowSizeMsg:
		g.viewport.Width, g.viewport.Height = msg.Width, msg.Height
		return g, nil
	case tea.KeyMsg:
		if msg.String() == "R" {
			return g, g.load()
		}
	}
	var cmd tea.Cmd
	g.viewport, cmd = g.viewport.Update(msg)
	return g, cmd
}

func (g *GitLogView) View() string {
	if !g.loaded {
		return Styles.Empty.Render(g.tr.T("global.loading"))
	}
	return g.viewport.View()
}
