package ui

import "slices"

// FocusManager rotates focus over panel IDs in tab order.
type FocusManager struct {
	Current  string
	Order    []string
	OnChange func(from, to string)
}

// Next focuses the following panel, wrapping around, and returns its ID.
func (f *FocusManager) Next() string {
	return f.rotate(1)
}

// Prev focuses the preceding panel, wrapping around, and returns its ID.
func (f *FocusManager) Prev() string {
	return f.rotate(-1)
}

// SetFocus focuses id. It returns false, leaving focus alone, when id is not
// in the order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.move(id)
	return true
}

func (f *FocusManager) rotate(step int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	if idx < 0 && step < 0 {
		// Unknown current: back from the start lands on the last panel.
		idx = 0
	}
	f.move(f.Order[((idx+step)%n+n)%n])
	return f.Current
}

func (f *FocusManager) move(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
