package domain

import "strings"

// Parse builds a task tree from outline text. It accepts any input.
//
// The result is the virtual root, unless the root has no body and exactly one
// child, in which case that child is returned.
func Parse(text string, ids *IDGenerator) *Task {
	root := ParseRoot(text, ids)
	if root.body == nil && len(root.children) == 1 {
		return root.children[0]
	}
	return root
}

// ParseRoot is Parse without the single-child shortcut: it always returns
// the virtual root, so top-level tasks can be added to any outline.
func ParseRoot(text string, ids *IDGenerator) *Task {
	root := NewVirtualTask(ids)
	b := builder{stack: []*Task{root}}
	for _, line := range outlineLines(text) {
		b.feed(line)
	}
	return root
}

// builder keeps the chain of open tasks: root, its last child, that child's
// last child and so on.
type builder struct {
	stack []*Task
}

func (b *builder) feed(line string) {
	for depth := 0; depth < len(b.stack); depth++ {
		node := b.stack[depth]
		switch Classify(node.Level(), line) {
		case LineBlank, LineBody:
			if len(node.children) > 0 {
				continue
			}
			node.AppendBodyLine(line)
			return
		case LineChild:
			child := NewTask(line, node.ids)
			node.AppendChild(child)
			b.stack = append(b.stack[:depth+1], child)
			return
		}
	}
}

// outlineLines splits text into lines, dropping whitespace-only lines at
// either end.
func outlineLines(text string) []string {
	lines := strings.Split(text, "\n")
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}
