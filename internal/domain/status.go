package domain

import "fmt"

// Status represents the board column of a task.
type Status string

const (
	StatusNew     Status = "new"     // Not started
	StatusDoing   Status = "doing"   // In progress
	StatusDone    Status = "done"    // Finished (carried by the "x " marker)
	StatusUnknown Status = "unknown" // status tag with an unrecognised value
)

// BoardStatuses returns the board columns in display order.
func BoardStatuses() []Status {
	return []Status{StatusNew, StatusUnknown, StatusDoing, StatusDone}
}

// cycle defines the order used when stepping a task through the board.
var cycle = map[Status]Status{
	StatusNew:     StatusDoing,
	StatusDoing:   StatusDone,
	StatusDone:    StatusNew,
	StatusUnknown: StatusNew,
}

// Next returns the status that follows s on the board.
func (s Status) Next() Status {
	if next, ok := cycle[s]; ok {
		return next
	}
	return StatusNew
}

// IsValid returns true if the status can be written to a task.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusDoing:
		return "Doing"
	case StatusDone:
		return "Done"
	case StatusUnknown:
		return "Unknown"
	default:
		return string(s)
	}
}

// ParseStatus converts user input into a writable status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q (want new, doing or done)", ErrInvalidStatus, s)
	}
	return st, nil
}

// statusFromTag maps a status tag value to a board column.
func statusFromTag(value string) Status {
	st := Status(value)
	if st.IsValid() {
		return st
	}
	return StatusUnknown
}
