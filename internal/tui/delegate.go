package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/whiteboard/internal/domain"
)

// taskItem is one row of the flattened outline.
type taskItem struct {
	task     *domain.Task
	id       string
	parentID string // Empty for top-level tasks
	depth    int    // 1 = top level
}

func (t taskItem) FilterValue() string {
	return strings.TrimLeft(t.task.Line(), " ")
}

// flatten lists the concrete tasks below root in outline order.
func flatten(root *domain.Task) []taskItem {
	var items []taskItem
	parents := map[*domain.Task]string{}
	root.Walk(func(task *domain.Task, depth int) bool {
		id, _ := task.PeekID()
		for _, child := range task.Children() {
			parents[child] = id
		}
		if task.IsVirtual() {
			return true
		}
		items = append(items, taskItem{task: task, id: id, parentID: parents[task], depth: depth})
		return true
	})
	return items
}

type taskDelegate struct {
	styles Styles
}

func newTaskDelegate(styles Styles) taskDelegate {
	return taskDelegate{styles: styles}
}

func (d taskDelegate) Height() int {
	return 1
}

func (d taskDelegate) Spacing() int {
	return 0
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()
	status := task.Status()

	indicatorChar := " "
	if selected {
		indicatorChar = ">"
	}

	idStr := fmt.Sprintf("%5s", ti.id)
	indent := strings.Repeat("  ", max(ti.depth-1, 0))
	bodyMark := " "
	if task.HasBody() {
		bodyMark = "¶"
	}

	// indicator, id, icon, body mark and their separators
	prefixWidth := 1 + 1 + runewidth.StringWidth(idStr) + 1 + 1 + 1 + 1 + 1 + runewidth.StringWidth(indent)
	maxLineLen := m.Width() - prefixWidth
	if maxLineLen < 10 {
		maxLineLen = 10
	}
	text := strings.TrimLeft(task.Line(), " ")
	if runewidth.StringWidth(text) > maxLineLen {
		text = runewidth.Truncate(text, maxLineLen, "...")
	}

	lineStyle := d.styles.TaskLine
	switch {
	case selected:
		lineStyle = d.styles.TaskLineSelected
	case task.IsDone():
		lineStyle = d.styles.TaskLineDone
	}

	line := d.styles.SelectionIndicator.Render(indicatorChar) + " " +
		d.styles.TaskID.Render(idStr) + " " +
		d.styles.StatusStyle(status).Render(StatusIcon(status)) + " " +
		d.styles.BodyMarker.Render(bodyMark) + " " +
		indent + lineStyle.Render(text)
	_, _ = fmt.Fprint(w, line)
}
