package ui

// Layout arranges panels and defines focus order.
type Layout interface {
	Panels() []Panel
	// Panel looks a panel up by slot ID.
	Panel(id string) (Panel, bool)
	// FocusOrder lists the panels tab visits, in order.
	FocusOrder() []string
}
