package ui

import tea "github.com/charmbracelet/bubbletea"

// ViewStack orders views front to back; the editor panes keep open files in
// one, the front file last.
type ViewStack struct {
	Stack []View
}

// Push puts v in front.
func (s *ViewStack) Push(v View) {
	s.Stack = append(s.Stack, v)
}

// Pop removes and returns the front view, or nil when empty.
func (s *ViewStack) Pop() View {
	top := s.Peek()
	if top != nil {
		s.Stack = s.Stack[:len(s.Stack)-1]
	}
	return top
}

// Peek returns the front view, or nil when empty.
func (s *ViewStack) Peek() View {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[len(s.Stack)-1]
}

// Len returns the number of views.
func (s *ViewStack) Len() int {
	return len(s.Stack)
}

// Raise moves the first view satisfying match to the front. It reports
// whether one was found.
func (s *ViewStack) Raise(match func(View) bool) bool {
	for i, v := range s.Stack {
		if match(v) {
			s.Stack = append(s.Stack[:i], s.Stack[i+1:]...)
			s.Push(v)
			return true
		}
	}
	return false
}

// ReplaceTop swaps the front view for v, typically the result of its Update.
func (s *ViewStack) ReplaceTop(v View) {
	if len(s.Stack) > 0 {
		s.Stack[len(s.Stack)-1] = v
	}
}

// UpdateAll passes msg to every view, back to front.
func (s *ViewStack) UpdateAll(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range s.Stack {
		nv, cmd := v.Update(msg)
		s.Stack[i] = nv
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}
