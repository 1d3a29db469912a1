// Package domain contains the outline model: parsing, attributes, identifiers,
// the JSON projection and rendering of todo.txt style outlines.
package domain

import (
	"strings"
)

// Well-known tag keys.
const (
	IDTagKey     = "id"
	StatusTagKey = "status"
)

// Task is a node of an outline.
// A task without a line is virtual: it groups top-level tasks or holds text
// that precedes them, and never has attributes or an identifier.
type Task struct {
	line     *string      // Own line (nil = virtual)
	body     []string     // Body lines (nil = no body)
	children []*Task      // Child tasks in order
	ids      *IDGenerator // Source of new identifiers
	view     *lineView    // Parsed line, dropped on every line change
}

// lineView holds everything derived from a line.
type lineView struct {
	tokens   []Token
	err      error
	done     bool
	contexts []string
	projects []string
	tags     map[string]string
}

// NewTask creates a concrete task.
func NewTask(line string, ids *IDGenerator) *Task {
	t := &Task{ids: ids}
	t.setLine(line)
	return t
}

// NewVirtualTask creates a task without a line.
func NewVirtualTask(ids *IDGenerator) *Task {
	return &Task{ids: ids}
}

// IsVirtual returns true if the task has no line.
func (t *Task) IsVirtual() bool {
	return t.line == nil
}

// Line returns the task's line, or "" for a virtual task.
func (t *Task) Line() string {
	if t.line == nil {
		return ""
	}
	return *t.line
}

// SetLine replaces the task's line verbatim. A virtual task becomes concrete.
func (t *Task) SetLine(line string) {
	t.setLine(line)
}

// setLine is the only writer of t.line.
func (t *Task) setLine(line string) {
	t.line = &line
	t.view = nil
}

// Level returns the outline level of the task, -1 for a virtual task.
func (t *Task) Level() int {
	if t.line == nil {
		return -1
	}
	return IndentLevel(*t.line)
}

// Body returns the body text and whether the task has a body.
func (t *Task) Body() (string, bool) {
	if t.body == nil {
		return "", false
	}
	return strings.Join(t.body, "\n"), true
}

// HasBody returns true if the task has a body.
func (t *Task) HasBody() bool {
	return t.body != nil
}

// SetBody replaces the body verbatim.
func (t *Task) SetBody(body string) {
	t.body = strings.Split(body, "\n")
}

// ClearBody removes the body.
func (t *Task) ClearBody() {
	t.body = nil
}

// AppendBodyLine adds a line to the body, creating it if needed.
func (t *Task) AppendBodyLine(line string) {
	t.body = append(t.body, line)
}

// Children returns the child tasks. The slice must not be modified.
func (t *Task) Children() []*Task {
	return t.children
}

// AppendChild adds a child task at the end.
func (t *Task) AppendChild(child *Task) {
	t.children = append(t.children, child)
}

func (t *Task) parsed() *lineView {
	if t.view != nil {
		return t.view
	}
	v := &lineView{tags: map[string]string{}}
	if t.line != nil {
		v.tokens, v.err = Tokenize(*t.line)
		for _, tok := range v.tokens {
			switch tok.Kind {
			case TokenDoneMarker:
				v.done = true
			case TokenContext:
				v.contexts = append(v.contexts, tok.Value)
			case TokenProject:
				v.projects = append(v.projects, tok.Value)
			case TokenTag:
				v.tags[tok.Key] = tok.Value
			}
		}
	}
	t.view = v
	return v
}

// IsDone returns true if the line starts with the "x " marker or carries status:done.
func (t *Task) IsDone() bool {
	v := t.parsed()
	return v.done || v.tags[StatusTagKey] == string(StatusDone)
}

// Contexts returns the @contexts in line order, duplicates preserved.
func (t *Task) Contexts() []string {
	return append([]string{}, t.parsed().contexts...)
}

// Projects returns the +projects in line order, duplicates preserved.
func (t *Task) Projects() []string {
	return append([]string{}, t.parsed().projects...)
}

// Tags returns the key:value tags of the line; the last occurrence of a key wins.
// The map is a copy and may be modified by the caller.
func (t *Task) Tags() map[string]string {
	tags := t.parsed().tags
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

// Tag returns the value of a single tag.
func (t *Task) Tag(key string) (string, bool) {
	v, ok := t.parsed().tags[key]
	return v, ok
}

// Status returns the board column of the task.
func (t *Task) Status() Status {
	if v, ok := t.Tag(StatusTagKey); ok {
		return statusFromTag(v)
	}
	if t.IsDone() {
		return StatusDone
	}
	return StatusNew
}

// Walk visits the task and its descendants depth-first.
// Returning false from fn skips the descendants of that task.
func (t *Task) Walk(fn func(task *Task, depth int) bool) {
	t.walk(fn, 0)
}

func (t *Task) walk(fn func(task *Task, depth int) bool, depth int) {
	if !fn(t, depth) {
		return
	}
	for _, c := range t.children {
		c.walk(fn, depth+1)
	}
}

// FindByID returns the concrete task with the given id tag, or nil.
// Identifiers are read, never minted.
func (t *Task) FindByID(id string) *Task {
	var found *Task
	t.Walk(func(task *Task, _ int) bool {
		if found != nil {
			return false
		}
		if got, ok := task.PeekID(); ok && got == id {
			found = task
			return false
		}
		return true
	})
	return found
}
