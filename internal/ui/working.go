package ui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"studiodash/internal/i18n"
	"studiodash/internal/ui/textutil"
)

// WorkingView lists the files open in the panes, most recent first. Enter
// brings the selected file to the front.
type WorkingView struct {
	root   string
	tr     i18n.Translator
	files  []string
	cursor int
	width  int
}

// Ensure WorkingView implements View.
var _ View = (*WorkingView)(nil)

func NewWorkingView(root string, tr i18n.Translator) *WorkingView {
	return &WorkingView{root: root, tr: tr, width: 30}
}

// Files returns the tracked files, most recent first.
func (w *WorkingView) Files() []string {
	return w.files
}

func (w *WorkingView) Init() tea.Cmd { return nil }

func (w *WorkingView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenFileMsg:
		w.touch(msg.Path)
	case fileFrontMsg:
		// The previous front file was closed.
		if len(w.files) > 0 {
			w.files = w.files[1:]
		}
		if msg.Path != "" {
			w.touch(msg.Path)
		}
		w.cursor = min(w.cursor, max(len(w.files)-1, 0))
	case tea.WindowSizeMsg:
		w.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			w.cursor = min(w.cursor+1, max(len(w.files)-1, 0))
		case "k", "up":
			w.cursor = max(w.cursor-1, 0)
		case "enter":
			if w.cursor < len(w.files) {
				path := w.files[w.cursor]
				return w, func() tea.Msg { return OpenFileMsg{Path: path} }
			}
		}
	}
	return w, nil
}

func (w *WorkingView) touch(path string) {
	for i, f := range w.files {
		if f == path {
			w.files = append(w.files[:i], w.files[i+1:]...)
			break
		}
	}
	w.files = append([]string{path}, w.files...)
}

func (w *WorkingView) View() string {
	if len(w.files) == 0 {
		return Styles.Empty.Render(w.tr.T("working.empty"))
	}
	lines := make([]string, len(w.files))
	for i, f := range w.files {
		rel, err := filepath.Rel(w.root, f)
		if err != nil {
			rel = f
		}
		line := textutil.Truncate(filepath.Base(f)+"  "+filepath.Dir(rel), w.width)
		if i == w.cursor {
			lines[i] = Styles.Selected.Render(line)
		} else {
			lines[i] = Styles.Normal.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
