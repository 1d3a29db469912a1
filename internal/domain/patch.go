package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Patch is a partial update of a task tree, as sent by a client.
// Nil fields are left untouched.
type Patch struct {
	Line      *string
	Body      *string
	ID        *string
	Status    *Status
	IsDone    *bool
	Tags      map[string]string // nil = keep current tags
	Children  []*Patch          // nil = keep children; otherwise resized to this length
	ClearBody bool              // body was null
}

// UnmarshalJSON decodes a patch document; see DecodePatch.
func (p *Patch) UnmarshalJSON(data []byte) error {
	decoded, err := decodePatch(data, "")
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

// DecodePatch parses a patch document. Fields with the wrong JSON type are
// reported as *PatchShapeError. The read-only projection fields contexts and
// projects, and unknown fields, are ignored.
func DecodePatch(data []byte) (*Patch, error) {
	return decodePatch(data, "")
}

func decodePatch(data []byte, path string) (*Patch, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, &PatchShapeError{Path: rootPath(path), Err: errors.New("expected an object")}
	}
	p := &Patch{}
	for key, raw := range fields {
		fp := fieldPath(path, key)
		null := isNull(raw)
		var err error
		switch key {
		case "line":
			if !null {
				p.Line, err = decodeString(raw)
			}
		case "body":
			if null {
				p.ClearBody = true
			} else {
				p.Body, err = decodeString(raw)
			}
		case "id":
			if !null {
				p.ID, err = decodeID(raw)
			}
		case "status":
			if !null {
				var s *string
				if s, err = decodeString(raw); err == nil {
					st := Status(*s)
					p.Status = &st
				}
			}
		case "is_done":
			if !null {
				var b bool
				if err = json.Unmarshal(raw, &b); err == nil {
					p.IsDone = &b
				} else {
					err = errors.New("expected a boolean")
				}
			}
		case "tags":
			if !null {
				p.Tags, err = decodeTags(raw, fp)
				if err != nil {
					return nil, err
				}
			}
		case "children":
			if !null {
				p.Children, err = decodeChildren(raw, fp)
				if err != nil {
					return nil, err
				}
			}
		}
		if err != nil {
			return nil, &PatchShapeError{Path: fp, Err: err}
		}
	}
	return p, nil
}

func decodeString(raw json.RawMessage) (*string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("expected a string")
	}
	return &s, nil
}

// decodeID accepts strings and numbers.
func decodeID(raw json.RawMessage) (*string, error) {
	if s, err := decodeString(raw); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, errors.New("expected a string or number")
	}
	s := n.String()
	return &s, nil
}

func decodeTags(raw json.RawMessage, path string) (map[string]string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &PatchShapeError{Path: path, Err: errors.New("expected an object")}
	}
	tags := make(map[string]string, len(fields))
	for k, v := range fields {
		s, err := decodeString(v)
		if err != nil {
			return nil, &PatchShapeError{Path: path + "." + k, Err: err}
		}
		tags[k] = *s
	}
	return tags, nil
}

func decodeChildren(raw json.RawMessage, path string) ([]*Patch, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &PatchShapeError{Path: path, Err: errors.New("expected an array")}
	}
	children := make([]*Patch, len(items))
	for i, item := range items {
		child, err := decodePatch(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func fieldPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func rootPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

// validate checks that every line parses, stays on one line and every body
// line is indented as body, so that a rejected patch leaves the tree
// untouched. t is the task the patch will be applied to, nil for a child
// that does not exist yet; freshLevel is the level such a child gets.
func (p *Patch) validate(path string, t *Task, freshLevel int) error {
	level := freshLevel
	if t != nil {
		level = t.Level()
	}
	if p.Line != nil {
		if strings.ContainsAny(*p.Line, "\r\n") {
			return fmt.Errorf("%s: %w", fieldPath(path, "line"), ErrLineBreak)
		}
		if _, err := Tokenize(*p.Line); err != nil {
			return fmt.Errorf("%s: %w", fieldPath(path, "line"), err)
		}
		if freshLevel < 0 && !t.IsVirtual() {
			level = IndentLevel(*p.Line)
		}
	}
	if p.Body != nil {
		for i, line := range strings.Split(*p.Body, "\n") {
			if Classify(level, line) == LineChild {
				return fmt.Errorf("%s: line %d: %w", fieldPath(path, "body"), i+1, ErrBodyIndent)
			}
		}
	}
	if p.ID != nil {
		if _, err := formatTag(IDTagKey, *p.ID); err != nil {
			return fmt.Errorf("%s: %w", fieldPath(path, "id"), err)
		}
	}
	if p.Status != nil {
		if _, err := formatTag(StatusTagKey, string(*p.Status)); err != nil {
			return fmt.Errorf("%s: %w", fieldPath(path, "status"), err)
		}
	}
	for k, v := range p.Tags {
		if _, err := formatTag(k, v); err != nil {
			return fmt.Errorf("%s: %w", fieldPath(path, "tags."+k), err)
		}
	}
	for i, c := range p.Children {
		var child *Task
		fresh := -1
		if t != nil && i < len(t.children) {
			child = t.children[i]
		} else {
			fresh = level + 1
		}
		if c == nil {
			continue
		}
		if err := c.validate(fmt.Sprintf("%s[%d]", fieldPath(path, "children"), i), child, fresh); err != nil {
			return err
		}
	}
	return nil
}

// ApplyJSON merges a patch into a task tree.
//
// The line and body are replaced verbatim. Tags are reconciled against the
// target tag set (the patch tags, or the current ones) with status and id
// folded in; the current id is kept when the patch names none. status:new and
// status:done are dropped in favour of the "x " marker. Children are resized
// to the patch length and patched by position. Every concrete task ends up
// with an identifier.
func ApplyJSON(t *Task, p *Patch) error {
	if p == nil {
		return t.EnsureID()
	}
	if err := p.validate("", t, -1); err != nil {
		return err
	}
	return applyPatch(t, p, -1)
}

// applyPatch patches t. freshLevel is the level a newly padded child must
// sit at, or -1 for an existing task.
func applyPatch(t *Task, p *Patch, freshLevel int) error {
	if p == nil {
		p = &Patch{}
	}
	if p.Line != nil {
		line := *p.Line
		if freshLevel >= 0 && IndentLevel(line) != freshLevel {
			line = IndentString(freshLevel) + strings.TrimLeft(line, " \t")
		}
		t.setLine(line)
	}
	switch {
	case p.ClearBody:
		t.ClearBody()
	case p.Body != nil:
		t.SetBody(*p.Body)
	}
	if !t.IsVirtual() {
		if err := t.syncAttributes(p); err != nil {
			return err
		}
	}
	if p.Children != nil {
		existing := len(t.children)
		level := t.Level() + 1
		for len(t.children) < len(p.Children) {
			t.children = append(t.children, NewTask(IndentString(level), t.ids))
		}
		clear(t.children[len(p.Children):])
		t.children = t.children[:len(p.Children)]
		for i, cp := range p.Children {
			fresh := -1
			if i >= existing {
				fresh = level
			}
			if err := applyPatch(t.children[i], cp, fresh); err != nil {
				return fmt.Errorf("children[%d]: %w", i, err)
			}
		}
	}
	return t.EnsureID()
}

// syncAttributes rewrites the line so its tags and done marker match the patch.
func (t *Task) syncAttributes(p *Patch) error {
	current := t.Tags()
	var target map[string]string
	if p.Tags != nil {
		target = make(map[string]string, len(p.Tags)+2)
		for k, v := range p.Tags {
			target[k] = v
		}
	} else {
		target = t.Tags()
	}

	_, statusSet := p.Tags[StatusTagKey]
	if p.Status != nil {
		cur, ok := target[StatusTagKey]
		// "unknown" is a derived column: keep an unrecognised value as it is.
		if *p.Status != StatusUnknown || !ok || statusFromTag(cur) != StatusUnknown {
			target[StatusTagKey] = string(*p.Status)
		}
		statusSet = true
	}
	if p.ID != nil {
		target[IDTagKey] = *p.ID
	} else if _, ok := target[IDTagKey]; !ok {
		if id, ok := current[IDTagKey]; ok {
			target[IDTagKey] = id
		}
	}

	done := t.IsDone()
	if statusSet {
		done = target[StatusTagKey] == string(StatusDone)
	}
	if p.IsDone != nil {
		done = *p.IsDone
	}
	if s, ok := target[StatusTagKey]; ok && (s == string(StatusNew) || s == string(StatusDone)) {
		delete(target, StatusTagKey)
	}

	line, err := rewriteTags(t.Line(), current, target)
	if err != nil {
		return err
	}
	t.setLine(setDoneMarker(line, done))
	return nil
}
