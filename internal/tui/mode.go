// Package tui provides the terminal user interface for whiteboard.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota // Default navigation mode
	ModeAdd                // Line input for a new task
	ModeDetail             // Body of the selected task
	ModeHelp               // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAdd:
		return "add"
	case ModeDetail:
		return "detail"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeAdd
}
