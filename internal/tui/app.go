package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/infra/notify"
	"github.com/runoshun/whiteboard/internal/infra/watcher"
	"github.com/runoshun/whiteboard/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// Components (structs with pointers)
	keys     KeyMap
	styles   Styles
	help     help.Model
	taskList list.Model
	detail   viewport.Model
	input    textinput.Model

	// State
	addParent string // Parent id of the task being added
	selectID  string // Task to select after the next load

	// Numeric state (smaller types last)
	mode   Mode
	width  int
	height int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "New task line, e.g. write docs @desk owner:bob"
	ti.CharLimit = 500

	styles := DefaultStyles()
	taskList := list.New([]list.Item{}, newTaskDelegate(styles), 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	return &Model{
		container: c,
		mode:      ModeNormal,
		keys:      DefaultKeyMap(),
		styles:    styles,
		help:      help.New(),
		taskList:  taskList,
		detail:    viewport.New(0, 0),
		input:     ti,
	}
}

// Run starts the TUI and blocks until the user quits.
// When the outline is a watched file, edits made elsewhere reload the view.
func Run(c *app.Container) error {
	// Console lines would corrupt the alternate screen
	c.SetConsoleOutput(io.Discard)

	p := tea.NewProgram(New(c), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := c.AppConfig
	if cfg.Server.Watch && cfg.Outline.Store == domain.StoreFile {
		w := watcher.New(c.Config.OutlinePath, cfg.Server.Debounce(), notify.Func(func(context.Context, domain.Event) {
			p.Send(MsgReloadOutline{})
		}), c.Console)
		c.Notifier = notify.Func(func(context.Context, domain.Event) { w.Sync() })
		go watchOutline(ctx, w, p.Send)
	}

	_, err := p.Run()
	return err
}

// watchOutline runs w until ctx is canceled and reports a failure to the model.
func watchOutline(ctx context.Context, w *watcher.Watcher, send func(tea.Msg)) {
	if err := w.Run(ctx); err != nil {
		send(MsgError{Err: fmt.Errorf("watch outline: %w", err)})
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadOutline()
}

// ctx returns the context for use case calls made by the TUI.
func (m *Model) ctx() context.Context {
	return domain.WithSource(context.Background(), domain.SourceTUI)
}

// loadOutline returns a command that reads the outline.
// Tasks without an id are given one so every row can be acted on.
func (m *Model) loadOutline() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowOutlineUseCase().Execute(m.ctx(), usecase.ShowOutlineInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgOutlineLoaded{Items: flatten(out.Task)}
	}
}

// toggleDone returns a command that checks a task off, or reopens it.
func (m *Model) toggleDone(item taskItem) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.CompleteTaskUseCase().Execute(m.ctx(), usecase.CompleteTaskInput{
			TaskID: item.id,
			Undo:   item.task.IsDone(),
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskUpdated{TaskID: item.id}
	}
}

// cycleStatus returns a command that advances a task to its next status.
func (m *Model) cycleStatus(item taskItem) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.SetStatusUseCase().Execute(m.ctx(), usecase.SetStatusInput{TaskID: item.id})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskUpdated{TaskID: item.id}
	}
}

// addTask returns a command that appends a task under parentID.
func (m *Model) addTask(parentID, line string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AddTaskUseCase().Execute(m.ctx(), usecase.AddTaskInput{
			ParentID: parentID,
			Line:     line,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskAdded{TaskID: out.ID}
	}
}

// SelectedItem returns the currently selected row.
func (m *Model) SelectedItem() (taskItem, bool) {
	ti, ok := m.taskList.SelectedItem().(taskItem)
	return ti, ok
}

// setItems replaces the rows, keeping the selection on selectID if present.
func (m *Model) setItems(items []taskItem) {
	listItems := make([]list.Item, 0, len(items))
	for _, it := range items {
		listItems = append(listItems, it)
	}
	m.taskList.SetItems(listItems)

	if m.selectID == "" {
		return
	}
	for i, it := range items {
		if it.id == m.selectID {
			m.taskList.Select(i)
			break
		}
	}
	m.selectID = ""
}
