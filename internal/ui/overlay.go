package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal drawn over the current mode, such as the confirmation
// mask or the notification log.
type Overlay struct {
	View View
	// Dismiss is a key the app handles by popping the overlay. Empty when the
	// view closes itself with DismissModalMsg.
	Dismiss string
}

// IsDismissKey reports whether key closes the overlay.
func (o *Overlay) IsDismissKey(key string) bool {
	return o.Dismiss != "" && key == o.Dismiss
}

// OverlayStack holds the open overlays. Only the top one is drawn and
// receives keys.
type OverlayStack struct {
	Stack []Overlay
}

// Push opens o on top.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Pop closes and returns the top overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	top, ok := s.Peek()
	if ok {
		s.Stack = s.Stack[:len(s.Stack)-1]
	}
	return top, ok
}

// Peek returns the top overlay.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of open overlays.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// Remove closes the topmost overlay whose view satisfies match, wherever it
// sits in the stack.
func (s *OverlayStack) Remove(match func(View) bool) bool {
	for i := len(s.Stack) - 1; i >= 0; i-- {
		if match(s.Stack[i].View) {
			s.Stack = append(s.Stack[:i], s.Stack[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateTop passes msg to the top overlay and keeps the view it returns.
// The caller runs the returned command.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	newView, cmd := top.View.Update(msg)
	top.View = newView
	return cmd, true
}
