package domain

import "strings"

// Render serializes a task tree back to outline text.
// Render(Parse(s)) == s for any s produced by Render.
func Render(t *Task) string {
	var lines []string
	t.appendLines(&lines)
	return strings.Join(lines, "\n")
}

func (t *Task) appendLines(lines *[]string) {
	if t.line != nil {
		*lines = append(*lines, *t.line)
	}
	*lines = append(*lines, t.body...)
	for _, c := range t.children {
		c.appendLines(lines)
	}
}

// String returns the rendered subtree.
func (t *Task) String() string {
	return Render(t)
}
