package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/whiteboard/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Status colors
	New     lipgloss.Color
	Doing   lipgloss.Color
	Done    lipgloss.Color
	Unknown lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)

	New:     lipgloss.Color("#74B9FF"), // Light blue
	Doing:   lipgloss.Color("#FDCB6E"), // Yellow
	Done:    lipgloss.Color("#00B894"), // Green
	Unknown: lipgloss.Color("#A29BFE"), // Lavender
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderPath lipgloss.Style

	// Task list
	TaskID             lipgloss.Style
	TaskLine           lipgloss.Style
	TaskLineSelected   lipgloss.Style
	TaskLineDone       lipgloss.Style
	SelectionIndicator lipgloss.Style
	BodyMarker         lipgloss.Style

	// Status badges
	StatusNew     lipgloss.Style
	StatusDoing   lipgloss.Style
	StatusDone    lipgloss.Style
	StatusUnknown lipgloss.Style

	// Footer
	Footer lipgloss.Style

	// Input
	Input       lipgloss.Style
	InputPrompt lipgloss.Style

	// Error
	ErrorMsg lipgloss.Style

	// Detail view
	DetailTitle lipgloss.Style
	DetailBody  lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		HeaderPath: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TaskLine: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskLineSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskLineDone: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),

		SelectionIndicator: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected),

		BodyMarker: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		StatusNew: lipgloss.NewStyle().
			Foreground(Colors.New),

		StatusDoing: lipgloss.NewStyle().
			Foreground(Colors.Doing),

		StatusDone: lipgloss.NewStyle().
			Foreground(Colors.Done),

		StatusUnknown: lipgloss.NewStyle().
			Foreground(Colors.Unknown),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),

		Input: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		DetailBody: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),
	}
}

// StatusStyle returns the style for a given status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusNew:
		return s.StatusNew
	case domain.StatusDoing:
		return s.StatusDoing
	case domain.StatusDone:
		return s.StatusDone
	default:
		return s.StatusUnknown
	}
}

// StatusIcon returns an icon for a given status.
func StatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusNew:
		return "○"
	case domain.StatusDoing:
		return "●"
	case domain.StatusDone:
		return "✓"
	default:
		return "?"
	}
}
