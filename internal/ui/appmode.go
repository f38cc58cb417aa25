package ui

// AppMode is the top-level application mode.
type AppMode int

const (
	// ModeDashboard lists workspace cards.
	ModeDashboard AppMode = iota
	// ModeStudio shows the IDE panel composition for a local directory.
	ModeStudio
)

func (m AppMode) String() string {
	switch m {
	case ModeDashboard:
		return "Dashboard"
	case ModeStudio:
		return "Studio"
	default:
		return "Unknown"
	}
}
