package ui

import (
	"bytes"
	"context"
	"io"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"studiodash/internal/i18n"
	"studiodash/internal/pty"
)

// TerminalOutputMsg carries bytes read from a terminal's PTY.
type TerminalOutputMsg struct {
	Data []byte
	term *TerminalView
}

// terminalExitedMsg is sent once the PTY reader stops.
type terminalExitedMsg struct {
	term *TerminalView
}

// maxTerminalBuffer caps the scrollback kept in memory.
const maxTerminalBuffer = 256 << 10

// TerminalView is the PTY-backed shell of the bottom panel. Keys pass
// through to the shell; output is shown in a viewport.
type TerminalView struct {
	ptyRunner pty.Runner
	tr        i18n.Translator
	ptmx      io.ReadWriteCloser
	cancel    context.CancelFunc
	content   *bytes.Buffer
	viewport  viewport.Model
	workDir   string
	outputCh  chan []byte
	started   bool
	exited    bool
}

// Ensure TerminalView implements View.
var _ View = (*TerminalView)(nil)

const defaultTerminalWidth = 70
const defaultTerminalHeight = 10

// NewTerminalView creates a terminal that spawns a shell in workDir on Init.
// The ptyRunner is injected so implementations can be swapped.
func NewTerminalView(ptyRunner pty.Runner, workDir string, tr i18n.Translator) *TerminalView {
	return &TerminalView{
		ptyRunner: ptyRunner,
		tr:        tr,
		content:   &bytes.Buffer{},
		viewport:  viewport.New(defaultTerminalWidth, defaultTerminalHeight),
		workDir:   workDir,
		outputCh:  make(chan []byte, 64),
	}
}

// CapturesInput reports that every key belongs to the shell.
func (s *TerminalView) CapturesInput() bool {
	return s.ptmx != nil && !s.exited
}

// Init implements View. Spawns the shell once and starts reading from PTY.
func (s *TerminalView) Init() tea.Cmd {
	if s.started {
		return nil
	}
	s.started = true
	if s.ptyRunner == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	sz := pty.Size{Rows: uint16(s.viewport.Height), Cols: uint16(s.viewport.Width)}
	ptmx, err := s.ptyRunner.Start(ctx, pty.Shell(s.workDir), sz)
	if err != nil {
		cancel()
		s.content.WriteString(s.tr.Tf("terminal.failed", err.Error()) + "\r\n")
		s.refreshViewport()
		return nil
	}
	s.ptmx = ptmx
	s.cancel = cancel

	go func() {
		defer close(s.outputCh)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				s.outputCh <- cp
			}
			if err != nil {
				return
			}
		}
	}()

	return s.waitForOutput()
}

func (s *TerminalView) waitForOutput() tea.Cmd {
	ch := s.outputCh
	return func() tea.Msg {
		data, ok := <-ch
		if !ok {
			return terminalExitedMsg{term: s}
		}
		return TerminalOutputMsg{Data: data, term: s}
	}
}

// Update implements View.
func (s *TerminalView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case TerminalOutputMsg:
		if msg.term != s {
			return s, nil
		}
		s.content.Write(msg.Data)
		if s.content.Len() > maxTerminalBuffer {
			s.content.Next(s.content.Len() - maxTerminalBuffer)
		}
		s.refreshViewport()
		s.viewport.GotoBottom()
		return s, s.waitForOutput()
	case terminalExitedMsg:
		if msg.term == s {
			s.exited = true
		}
		return s, nil
	case tea.KeyMsg:
		if s.ptmx != nil && !s.exited {
			if b := keyToPTYBytes(msg); len(b) > 0 {
				_, _ = s.ptmx.Write(b)
			}
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.viewport.Width = msg.Width
		s.viewport.Height = msg.Height
		if s.ptmx != nil && s.ptyRunner != nil {
			_ = s.ptyRunner.Resize(s.ptmx, pty.Size{Rows: uint16(msg.Height), Cols: uint16(msg.Width)})
		}
		s.refreshViewport()
		return s, nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// View implements View.
func (s *TerminalView) View() string {
	return s.viewport.View()
}

func (s *TerminalView) refreshViewport() {
	s.viewport.SetContent(s.content.String())
}

// keyToPTYBytes converts a Bubble Tea KeyMsg to bytes the PTY expects.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyCtrlL:
		return []byte{0x0c}
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	default:
		if len(msg.Runes) > 0 {
			return []byte(string(msg.Runes))
		}
		return nil
	}
}

// Close stops the shell and releases the PTY.
func (s *TerminalView) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.ptmx != nil {
		return s.ptmx.Close()
	}
	return nil
}
