package domain

import "strings"

// Indent is the number of spaces that make up one outline level.
const Indent = 4

// LineKind is the classification of a line relative to the task it is fed to.
type LineKind int

const (
	LineBlank LineKind = iota // Whitespace-only line
	LineBody                  // Belongs to an open body (indented two or more levels deeper)
	LineChild                 // Starts a new child task
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineBody:
		return "body"
	case LineChild:
		return "child"
	default:
		return "unknown"
	}
}

// IndentLevel returns the outline level of a line: leading spaces divided by Indent.
func IndentLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n / Indent
}

// Classify reports how a line relates to a task at the given level.
// A virtual task sits at level -1, so its children live at level 0.
func Classify(level int, line string) LineKind {
	if isBlank(line) {
		return LineBlank
	}
	if IndentLevel(line) > level+1 {
		return LineBody
	}
	return LineChild
}

// IndentString returns the leading whitespace for the given level.
func IndentString(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*Indent)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// leadingSpace returns the length in bytes of the line's leading whitespace.
func leadingSpace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
