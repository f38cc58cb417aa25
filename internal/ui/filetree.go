package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"studiodash/internal/i18n"
	"studiodash/internal/ui/textutil"
)

// dirLoadedMsg carries the listing of one directory.
type dirLoadedMsg struct {
	tree    *FileTreeView
	path    string
	entries []os.DirEntry
	err     error
}

type treeNode struct {
	path     string
	name     string
	depth    int
	dir      bool
	expanded bool
}

// FileTreeView is the project explorer: a lazily expanded directory tree.
// Enter toggles a directory or opens a file.
type FileTreeView struct {
	root   string
	tr     i18n.Translator
	nodes  []treeNode
	cursor int
	offset int
	width  int
	height int
	err    error
}

// Ensure FileTreeView implements View.
var _ View = (*FileTreeView)(nil)

func NewFileTreeView(root string, tr i18n.Translator) *FileTreeView {
	return &FileTreeView{root: root, tr: tr, height: 20, width: 30}
}

func (f *FileTreeView) Init() tea.Cmd {
	return f.load(f.root)
}

func (f *FileTreeView) load(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(path)
		return dirLoadedMsg{tree: f, path: path, entries: entries, err: err}
	}
}

// Nodes returns the visible rows (for tests).
func (f *FileTreeView) Nodes() []string {
	out := make([]string, len(f.nodes))
	for i, n := range f.nodes {
		out[i] = strings.Repeat("  ", n.depth) + n.name
	}
	return out
}

func (f *FileTreeView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case dirLoadedMsg:
		if msg.tree != f {
			return f, nil
		}
		f.insert(msg)
		return f, nil
	case tea.WindowSizeMsg:
		f.width, f.height = msg.Width, msg.Height
		return f, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			f.move(1)
		case "k", "up":
			f.move(-1)
		case "g":
			f.cursor = 0
			f.scroll()
		case "G":
			f.cursor = max(len(f.nodes)-1, 0)
			f.scroll()
		case "enter", "l", "h":
			return f, f.activate(msg.String())
		}
	}
	return f, nil
}

func (f *FileTreeView) insert(msg dirLoadedMsg) {
	if msg.path == f.root {
		f.err = msg.err
		f.nodes = childNodes(msg.path, msg.entries, 0)
		return
	}
	for i, n := range f.nodes {
		if n.path != msg.path {
			continue
		}
		if msg.err != nil {
			f.nodes[i].expanded = false
			return
		}
		children := childNodes(msg.path, msg.entries, n.depth+1)
		rest := append(children, f.nodes[i+1:]...)
		f.nodes = append(f.nodes[:i+1], rest...)
		return
	}
}

func childNodes(dir string, entries []os.DirEntry, depth int) []treeNode {
	nodes := make([]treeNode, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		nodes = append(nodes, treeNode{
			path:  filepath.Join(dir, e.Name()),
			name:  e.Name(),
			depth: depth,
			dir:   e.IsDir(),
		})
	}
	// Directories first, then by name.
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].dir != nodes[j].dir {
			return nodes[i].dir
		}
		return nodes[i].name < nodes[j].name
	})
	return nodes
}

func (f *FileTreeView) move(step int) {
	if len(f.nodes) == 0 {
		return
	}
	f.cursor = min(max(f.cursor+step, 0), len(f.nodes)-1)
	f.scroll()
}

func (f *FileTreeView) scroll() {
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if h := max(f.height, 1); f.cursor >= f.offset+h {
		f.offset = f.cursor - h + 1
	}
}

func (f *FileTreeView) activate(key string) tea.Cmd {
	if f.cursor >= len(f.nodes) {
		return nil
	}
	n := f.nodes[f.cursor]
	if !n.dir {
		if key == "h" {
			return nil
		}
		return func() tea.Msg { return OpenFileMsg{Path: n.path} }
	}
	if n.expanded {
		if key == "l" {
			return nil
		}
		f.collapse(f.cursor)
		return nil
	}
	if key == "h" {
		return nil
	}
	f.nodes[f.cursor].expanded = true
	return f.load(n.path)
}

func (f *FileTreeView) collapse(i int) {
	f.nodes[i].expanded = false
	depth := f.nodes[i].depth
	j := i + 1
	for j < len(f.nodes) && f.nodes[j].depth > depth {
		j++
	}
	f.nodes = append(f.nodes[:i+1], f.nodes[j:]...)
}

func (f *FileTreeView) View() string {
	if f.err != nil {
		return Styles.Error.Render(textutil.Truncate(f.err.Error(), f.width))
	}
	if len(f.nodes) == 0 {
		return Styles.Empty.Render(f.tr.T("filetree.empty"))
	}
	end := min(f.offset+max(f.height, 1), len(f.nodes))
	lines := make([]string, 0, end-f.offset)
	for i := f.offset; i < end; i++ {
		n := f.nodes[i]
		marker := "  "
		if n.dir {
			marker = "▸ "
			if n.expanded {
				marker = "▾ "
			}
		}
		line := textutil.Truncate(strings.Repeat("  ", n.depth)+marker+n.name, f.width)
		if i == f.cursor {
			line = Styles.Selected.Render(line)
		} else if n.dir {
			line = Styles.Normal.Render(line)
		} else {
			line = Styles.Muted.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
