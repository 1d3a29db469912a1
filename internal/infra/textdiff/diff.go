// Package textdiff computes line diffs between two outline revisions.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

// Diff line kinds.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// Prefix returns the unified diff marker for op.
func (o Op) Prefix() string {
	switch o {
	case OpInsert:
		return "+"
	case OpDelete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a diff.
// OldNum and NewNum are 1-based; zero means the line does not exist on that side.
type Line struct {
	Text   string
	Op     Op
	OldNum int
	NewNum int
}

// Lines returns the line-level diff of before and after.
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	// Line-level reduction keeps every op on whole lines.
	a, b, lineArray := dmp.DiffLinesToChars(terminate(before), terminate(after))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out []Line
	oldNum, newNum := 0, 0
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			l := Line{Text: text}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				newNum++
				l.Op, l.NewNum = OpInsert, newNum
			case diffmatchpatch.DiffDelete:
				oldNum++
				l.Op, l.OldNum = OpDelete, oldNum
			default:
				oldNum++
				newNum++
				l.Op, l.OldNum, l.NewNum = OpEqual, oldNum, newNum
			}
			out = append(out, l)
		}
	}
	return out
}

// Changed reports whether the diff contains any insertion or deletion.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != OpEqual {
			return true
		}
	}
	return false
}

// Unified renders before and after as a unified diff with the given
// number of context lines. It returns "" when nothing changed.
func Unified(name, before, after string, context int) string {
	lines := Lines(before, after)
	if !Changed(lines) {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)
	for _, h := range hunks(lines, context) {
		writeHunk(&sb, lines[h.start:h.end])
	}
	return sb.String()
}

type span struct{ start, end int }

// hunks groups changed lines with their surrounding context, merging
// groups whose context overlaps.
func hunks(lines []Line, context int) []span {
	var out []span
	for i, l := range lines {
		if l.Op == OpEqual {
			continue
		}
		start := max(i-context, 0)
		end := min(i+context+1, len(lines))
		if n := len(out); n > 0 && start <= out[n-1].end {
			out[n-1].end = max(out[n-1].end, end)
			continue
		}
		out = append(out, span{start, end})
	}
	return out
}

func writeHunk(sb *strings.Builder, lines []Line) {
	oldStart, newStart := 0, 0
	oldCount, newCount := 0, 0
	for _, l := range lines {
		if l.OldNum > 0 {
			if oldStart == 0 {
				oldStart = l.OldNum
			}
			oldCount++
		}
		if l.NewNum > 0 {
			if newStart == 0 {
				newStart = l.NewNum
			}
			newCount++
		}
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range lines {
		sb.WriteString(l.Op.Prefix())
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
