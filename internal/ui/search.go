package ui

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"studiodash/internal/i18n"
	"studiodash/internal/ui/textutil"
)

// maxSearchResults caps how many matches a search returns.
const maxSearchResults = 200

// searchResultMsg carries the matches of one query.
type searchResultMsg struct {
	view  *SearchView
	query string
	paths []string
	err   error
}

// SearchView finds files under root whose path contains the query. The
// input takes every key while focused; Esc leaves it so j/k move through
// the results, / returns to it.
type SearchView struct {
	root    string
	tr      i18n.Translator
	input   textinput.Model
	query   string
	results []string
	cursor  int
	width   int
	height  int
	cancel  context.CancelFunc
}

// Ensure SearchView implements View.
var _ View = (*SearchView)(nil)

func NewSearchView(root string, tr i18n.Translator) *SearchView {
	ti := textinput.New()
	ti.Prompt = tr.T("search.prompt")
	ti.CharLimit = 256
	ti.Focus()
	return &SearchView{root: root, tr: tr, input: ti, width: 30, height: 10}
}

// Results returns the current matches relative to root.
func (s *SearchView) Results() []string {
	return s.results
}

// CapturesInput reports whether the query input has focus.
func (s *SearchView) CapturesInput() bool {
	return s.input.Focused()
}

func (s *SearchView) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchView) search(query string) tea.Cmd {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	root := s.root
	return func() tea.Msg {
		paths, err := findFiles(ctx, root, query)
		return searchResultMsg{view: s, query: query, paths: paths, err: err}
	}
}

// findFiles walks root for files whose relative path contains query,
// case-insensitively. Hidden directories are skipped.
func findFiles(ctx context.Context, root, query string) ([]string, error) {
	q := strings.ToLower(query)
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return nil
		}
		if strings.Contains(strings.ToLower(rel), q) {
			out = append(out, rel)
			if len(out) >= maxSearchResults {
				return filepath.SkipAll
			}
		}
		return nil
	})
	return out, err
}

func (s *SearchView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultMsg:
		if msg.view != s || msg.query != s.query {
			return s, nil
		}
		s.results = msg.paths
		s.cursor = 0
		return s, nil
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.input.Width = max(msg.Width-len(s.input.Prompt)-1, 1)
		return s, nil
	case tea.KeyMsg:
		if s.input.Focused() {
			switch msg.String() {
			case "esc":
				s.input.Blur()
				return s, nil
			case "enter":
				s.input.Blur()
				return s, s.openSelected()
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			if q := strings.TrimSpace(s.input.Value()); q != s.query {
				s.query = q
				if q == "" {
					s.results = nil
					return s, cmd
				}
				return s, tea.Batch(cmd, s.search(q))
			}
			return s, cmd
		}
		switch msg.String() {
		case "/", "i":
			return s, s.input.Focus()
		case "j", "down":
			s.cursor = min(s.cursor+1, max(len(s.results)-1, 0))
		case "k", "up":
			s.cursor = max(s.cursor-1, 0)
		case "enter":
			return s, s.openSelected()
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SearchView) openSelected() tea.Cmd {
	if s.cursor >= len(s.results) {
		return nil
	}
	path := filepath.Join(s.root, s.results[s.cursor])
	return func() tea.Msg { return OpenFileMsg{Path: path} }
}

func (s *SearchView) View() string {
	var b strings.Builder
	b.WriteString(s.input.View())
	b.WriteString("\n")
	if s.query != "" && len(s.results) == 0 {
		b.WriteString(Styles.Empty.Render(s.tr.T("search.noResults")))
		return b.String()
	}
	rows := max(s.height-1, 1)
	start := 0
	if s.cursor >= rows {
		start = s.cursor - rows + 1
	}
	end := min(start+rows, len(s.results))
	for i := start; i < end; i++ {
		line := textutil.Truncate(s.results[i], s.width)
		if i == s.cursor && !s.input.Focused() {
			line = Styles.Selected.Render(line)
		} else {
			line = Styles.Muted.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
