package domain

import (
	"fmt"
	"sort"
	"strings"
)

// TagSpec is a tag query: "key:" matches presence, "key:value" an exact value.
type TagSpec struct {
	Key      string
	Value    string
	AnyValue bool
}

// ParseTagSpec parses a tag query, splitting once on the first colon.
func ParseTagSpec(spec string) (TagSpec, error) {
	key, value, ok := strings.Cut(spec, ":")
	if !ok || !isTagKey(key) {
		return TagSpec{}, fmt.Errorf("%w: %q (want key: or key:value)", ErrInvalidTagSpec, spec)
	}
	return TagSpec{Key: key, Value: value, AnyValue: value == ""}, nil
}

// String returns the spec in key:value form.
func (s TagSpec) String() string {
	return s.Key + ":" + s.Value
}

// Match reports whether tags satisfy the spec.
func (s TagSpec) Match(tags map[string]string) bool {
	v, ok := tags[s.Key]
	if !ok {
		return false
	}
	return s.AnyValue || v == s.Value
}

// HasTags reports whether every spec matches the task's tags.
// A spec without a colon never matches.
func (t *Task) HasTags(specs ...string) bool {
	tags := t.parsed().tags
	for _, raw := range specs {
		spec, err := ParseTagSpec(raw)
		if err != nil || !spec.Match(tags) {
			return false
		}
	}
	return true
}

// HasNoTags reports whether none of the specs match the task's tags.
func (t *Task) HasNoTags(specs ...string) bool {
	tags := t.parsed().tags
	for _, raw := range specs {
		spec, err := ParseTagSpec(raw)
		if err == nil && spec.Match(tags) {
			return false
		}
	}
	return true
}

// ChildrenTagged returns the direct children for which HasTags(specs...) holds.
func (t *Task) ChildrenTagged(specs ...string) []*Task {
	var out []*Task
	for _, c := range t.children {
		if c.HasTags(specs...) {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenNotTagged returns the direct children for which HasNoTags(specs...) holds.
func (t *Task) ChildrenNotTagged(specs ...string) []*Task {
	var out []*Task
	for _, c := range t.children {
		if c.HasNoTags(specs...) {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenByStatus groups the direct children by board column.
// Every column of BoardStatuses is present in the result.
func (t *Task) ChildrenByStatus() map[Status][]*Task {
	out := make(map[Status][]*Task, 4)
	for _, st := range BoardStatuses() {
		out[st] = nil
	}
	for _, c := range t.children {
		st := c.Status()
		out[st] = append(out[st], c)
	}
	return out
}

// appendTag adds key:value to the end of a line.
func appendTag(line, key, value string) (string, error) {
	tag, err := formatTag(key, value)
	if err != nil {
		return "", err
	}
	if line == "" || strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
		return line + tag, nil
	}
	return line + " " + tag, nil
}

type span struct{ start, end int }

// removeSpans deletes the given spans and one adjacent separator space each.
// The preceding space is taken when there is text between prefix and the
// span, otherwise the following one, so the indentation and done marker are
// never touched.
func removeSpans(line string, prefix int, spans []span) string {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start > spans[j].start })
	for _, s := range spans {
		start, end := s.start, s.end
		switch {
		case start > prefix && line[start-1] == ' ':
			start--
		case end < len(line) && line[end] == ' ':
			end++
		}
		line = line[:start] + line[end:]
	}
	return line
}

// setDoneMarker adds or strips the leading "x " marker.
func setDoneMarker(line string, done bool) string {
	tokens, _ := Tokenize(line)
	for _, tok := range tokens {
		if tok.Kind != TokenDoneMarker {
			continue
		}
		if done {
			return line
		}
		return line[:tok.Start] + line[tok.End:]
	}
	if !done {
		return line
	}
	n := leadingSpace(line)
	return line[:n] + "x " + line[n:]
}

// rewriteTags makes the tags of line equal to target. Tags whose value
// differs from target are removed; missing ones are appended sorted by key.
func rewriteTags(line string, current, target map[string]string) (string, error) {
	tokens, _ := Tokenize(line)
	prefix := leadingSpace(line)
	var spans []span
	for _, tok := range tokens {
		if tok.Kind == TokenDoneMarker {
			prefix = tok.End
		}
		if tok.Kind != TokenTag {
			continue
		}
		if want, ok := target[tok.Key]; !ok || want != current[tok.Key] {
			spans = append(spans, span{tok.Start, tok.End})
		}
	}
	line = removeSpans(line, prefix, spans)

	keys := make([]string, 0, len(target))
	for k := range target {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if cur, ok := current[k]; ok && cur == target[k] {
			continue
		}
		var err error
		if line, err = appendTag(line, k, target[k]); err != nil {
			return "", err
		}
	}
	return line, nil
}
