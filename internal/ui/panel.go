package ui

// BoundsFunc returns a panel's rectangle for a width x height terminal.
type BoundsFunc func(width, height int) (x, y, w, h int)

// Panel is one slot of the studio frame with the view resolved for it.
type Panel struct {
	ID     string
	View   View
	Bounds BoundsFunc
	// Bordered panels are drawn inside a one-cell border.
	Bordered bool
}

// Inner returns the size left for the panel's view.
func (p Panel) Inner(width, height int) (w, h int) {
	_, _, w, h = p.Bounds(width, height)
	if p.Bordered {
		w, h = w-2, h-2
	}
	return max(w, 0), max(h, 0)
}
