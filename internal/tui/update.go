package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgOutlineLoaded:
		m.setItems(msg.Items)
		return m, nil

	case MsgTaskUpdated:
		m.selectID = msg.TaskID
		return m, m.loadOutline()

	case MsgTaskAdded:
		m.mode = ModeNormal
		m.input.Reset()
		m.selectID = msg.TaskID
		return m, m.loadOutline()

	case MsgReloadOutline:
		if item, ok := m.SelectedItem(); ok {
			m.selectID = item.id
		}
		return m, m.loadOutline()

	case MsgError:
		m.err = msg.Err
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	if m.mode == ModeAdd {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateLayoutSizes resizes the components to the window.
func (m *Model) updateLayoutSizes() {
	// header, footer, error line and app padding
	listHeight := m.height - 7
	if listHeight < 3 {
		listHeight = 3
	}
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	m.taskList.SetSize(width, listHeight)
	m.input.Width = width - 4
	m.detail.Width = width
	m.detail.Height = listHeight
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key press clears the previous error
	m.err = nil

	switch m.mode {
	case ModeAdd:
		return m.handleAddMode(msg)
	case ModeDetail:
		return m.handleDetailMode(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.mode = ModeNormal
		return m, nil
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.taskList.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.taskList.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDone):
		if item, ok := m.SelectedItem(); ok {
			return m, m.toggleDone(item)
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleStatus):
		if item, ok := m.SelectedItem(); ok {
			return m, m.cycleStatus(item)
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.addParent = ""
		if item, ok := m.SelectedItem(); ok {
			m.addParent = item.parentID
		}
		return m, m.startAdd()

	case key.Matches(msg, m.keys.AddChild):
		item, ok := m.SelectedItem()
		if !ok {
			return m, nil
		}
		m.addParent = item.id
		return m, m.startAdd()

	case key.Matches(msg, m.keys.Detail):
		item, ok := m.SelectedItem()
		if !ok {
			return m, nil
		}
		m.openDetail(item)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if item, ok := m.SelectedItem(); ok {
			m.selectID = item.id
		}
		return m, m.loadOutline()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}
	return m, nil
}

func (m *Model) startAdd() tea.Cmd {
	m.mode = ModeAdd
	m.input.Reset()
	return m.input.Focus()
}

func (m *Model) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		line := strings.TrimSpace(m.input.Value())
		if line == "" {
			m.mode = ModeNormal
			m.input.Blur()
			return m, nil
		}
		m.input.Blur()
		return m, m.addTask(m.addParent, line)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// openDetail shows the line and body of a task.
func (m *Model) openDetail(item taskItem) {
	body, _ := item.task.Body()
	m.detail.SetContent(dedent(body))
	m.detail.GotoTop()
	m.mode = ModeDetail
}

func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Detail):
		m.mode = ModeNormal
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// dedent removes the indentation shared by all non-blank lines.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	common := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " "))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return s
	}
	for i, l := range lines {
		if len(l) >= common {
			lines[i] = l[common:]
		} else {
			lines[i] = strings.TrimLeft(l, " ")
		}
	}
	return strings.Join(lines, "\n")
}
