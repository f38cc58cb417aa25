package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxPreviewBytes caps how much of a file a preview reads.
const maxPreviewBytes = 512 << 10

// fileLoadedMsg carries a preview's file content.
type fileLoadedMsg struct {
	preview *FilePreview
	content string
	err     error
}

// fileFrontMsg reports the file now in front of the panes ("" for none).
type fileFrontMsg struct {
	Path string
}

// FilePreview is a read-only view of one file.
type FilePreview struct {
	Path     string
	viewport viewport.Model
	loaded   bool
}

// Ensure FilePreview implements View.
var _ View = (*FilePreview)(nil)

func NewFilePreview(path string) *FilePreview {
	return &FilePreview{Path: path, viewport: viewport.New(60, 20)}
}

func (p *FilePreview) Init() tea.Cmd {
	return func() tea.Msg {
		content, err := readPreview(p.Path)
		return fileLoadedMsg{preview: p, content: content, err: err}
	}
}

func readPreview(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	buf, err := io.ReadAll(io.LimitReader(f, maxPreviewBytes))
	if err != nil {
		return "", err
	}
	if bytes.IndexByte(buf, 0) >= 0 || !utf8.Valid(buf) {
		return "", fmt.Errorf("%s: binary file", filepath.Base(path))
	}
	lines := strings.Split(string(buf), "\n")
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%*d │ %s\n", width, i+1, strings.ReplaceAll(l, "\t", "    "))
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (p *FilePreview) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case fileLoadedMsg:
		if msg.preview != p {
			return p, nil
		}
		p.loaded = true
		if msg.err != nil {
			p.viewport.SetContent(Styles.Error.Render(msg.err.Error()))
		} else {
			p.viewport.SetContent(msg.content)
		}
		return p, nil
	case tea.WindowSizeMsg:
		p.viewport.Width, p.viewport.Height = msg.Width, msg.Height
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *FilePreview) View() string {
	return p.viewport.View()
}

// PanesView is the editor area: a stack of open file previews, the most
// recently opened in front. Esc closes the front file.
type PanesView struct {
	stack  ViewStack
	width  int
	height int
}

// Ensure PanesView implements View.
var _ View = (*PanesView)(nil)

func NewPanesView() *PanesView {
	return &PanesView{}
}

// Open returns the open file paths, front last.
func (p *PanesView) Open() []string {
	out := make([]string, 0, p.stack.Len())
	for _, v := range p.stack.Stack {
		out = append(out, v.(*FilePreview).Path)
	}
	return out
}

func (p *PanesView) Init() tea.Cmd { return nil }

func (p *PanesView) front() *FilePreview {
	if v, ok := p.stack.Peek().(*FilePreview); ok {
		return v
	}
	return nil
}

func (p *PanesView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenFileMsg:
		return p, p.open(msg.Path)
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		return p, p.resizeAll()
	case tea.KeyMsg:
		if msg.String() == "esc" {
			p.stack.Pop()
			path := ""
			if f := p.front(); f != nil {
				path = f.Path
			}
			return p, func() tea.Msg { return fileFrontMsg{Path: path} }
		}
		if f := p.front(); f != nil {
			v, cmd := f.Update(msg)
			p.stack.ReplaceTop(v)
			return p, cmd
		}
		return p, nil
	}
	// Async loads go to every preview; each ignores the others'.
	return p, p.stack.UpdateAll(msg)
}

// open brings path to the front, opening it if needed.
func (p *PanesView) open(path string) tea.Cmd {
	if p.stack.Raise(func(v View) bool { return v.(*FilePreview).Path == path }) {
		return nil
	}
	fp := NewFilePreview(path)
	fp.viewport.Width, fp.viewport.Height = p.innerSize()
	p.stack.Push(fp)
	return fp.Init()
}

func (p *PanesView) innerSize() (int, int) {
	return max(p.width, 1), max(p.height-1, 1)
}

func (p *PanesView) resizeAll() tea.Cmd {
	w, h := p.innerSize()
	return p.stack.UpdateAll(tea.WindowSizeMsg{Width: w, Height: h})
}

func (p *PanesView) View() string {
	f := p.front()
	if f == nil {
		return Styles.Empty.Render("Open a file from the project tree")
	}
	tabs := make([]string, 0, p.stack.Len())
	for _, path := range p.Open() {
		name := filepath.Base(path)
		if path == f.Path {
			tabs = append(tabs, Styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, Styles.Tab.Render(name))
		}
	}
	header := lipgloss.NewStyle().MaxWidth(max(p.width, 1)).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	return lipgloss.JoinVertical(lipgloss.Left, header, f.View())
}
