package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/runoshun/whiteboard/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// crumb is one step of the path from the root to the shown task.
type crumb struct {
	ID   string
	Line string
}

// itemView is a grandchild card inside a status cell.
type itemView struct {
	ID          string
	Line        string
	Contexts    string
	HasChildren bool
}

// cellView holds the grandchildren of one row in one status column.
type cellView struct {
	Status domain.Status
	Items  []itemView
}

// rowView is a child task with its children spread over the status columns.
type rowView struct {
	ID     string
	Line   string
	Body   template.HTML
	Cells  []cellView
	Done   int
	Total  int
	IsDone bool
}

// columnView is a board column header.
type columnView struct {
	Status domain.Status
	Count  int // Grandchildren in this status
}

// boardPage is the data of index.html.
// A task is shown with one row per child; the columns hold its grandchildren.
type boardPage struct {
	Title   string
	ID      string
	Line    string
	Body    template.HTML
	Crumbs  []crumb
	Columns []columnView
	Rows    []rowView
}

// newBoardPage builds the board of the task with the given id below root.
// The unknown column is shown only when a grandchild sits in it.
func newBoardPage(root *domain.Task, id string) (*boardPage, error) {
	path := []*domain.Task{root}
	if id != "" {
		path = pathTo(root, id)
		if path == nil {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrTaskNotFound)
		}
	}
	task := path[len(path)-1]

	page := &boardPage{Title: "whiteboard", Line: task.Line(), Body: renderBody(task)}
	page.ID, _ = task.PeekID()
	if page.Line != "" {
		page.Title = strings.TrimSpace(page.Line) + " - whiteboard"
	}
	for _, t := range path {
		c := crumb{Line: strings.TrimSpace(t.Line())}
		c.ID, _ = t.PeekID()
		if c.Line == "" {
			c.Line = "root"
		}
		page.Crumbs = append(page.Crumbs, c)
	}

	counts := map[domain.Status]int{}
	for _, child := range task.Children() {
		for _, gc := range child.Children() {
			counts[gc.Status()]++
		}
	}
	var statuses []domain.Status
	for _, st := range domain.BoardStatuses() {
		if st == domain.StatusUnknown && counts[st] == 0 {
			continue
		}
		statuses = append(statuses, st)
		page.Columns = append(page.Columns, columnView{Status: st, Count: counts[st]})
	}

	for _, child := range task.Children() {
		row := rowView{
			Line:   strings.TrimSpace(child.Line()),
			Body:   renderBody(child),
			IsDone: child.IsDone(),
			Total:  len(child.Children()),
		}
		row.ID, _ = child.PeekID()
		grouped := child.ChildrenByStatus()
		row.Done = len(grouped[domain.StatusDone])
		for _, st := range statuses {
			cell := cellView{Status: st}
			for _, gc := range grouped[st] {
				item := itemView{
					Line:        strings.TrimSpace(gc.Line()),
					Contexts:    strings.Join(gc.Contexts(), ", "),
					HasChildren: len(gc.Children()) > 0,
				}
				item.ID, _ = gc.PeekID()
				cell.Items = append(cell.Items, item)
			}
			row.Cells = append(row.Cells, cell)
		}
		page.Rows = append(page.Rows, row)
	}
	return page, nil
}

// pathTo returns the tasks from root down to the task with the given id.
func pathTo(root *domain.Task, id string) []*domain.Task {
	if got, ok := root.PeekID(); ok && got == id {
		return []*domain.Task{root}
	}
	for _, c := range root.Children() {
		if rest := pathTo(c, id); rest != nil {
			return append([]*domain.Task{root}, rest...)
		}
	}
	return nil
}

// renderBody renders a task body as Markdown. The common indentation is
// removed first so indented bodies are not taken for code blocks.
func renderBody(t *domain.Task) template.HTML {
	body, ok := t.Body()
	if !ok || strings.TrimSpace(body) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(dedent(body)), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(body) + "</pre>") //nolint:gosec // escaped above
	}
	return template.HTML(buf.String()) //nolint:gosec // goldmark escapes raw HTML by default
}

func dedent(text string) string {
	lines := strings.Split(text, "\n")
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return text
	}
	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " ")
		}
	}
	return strings.Join(lines, "\n")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"width": func(n int) int {
			if n == 0 {
				return 100
			}
			return 100 / n
		},
	}
}
