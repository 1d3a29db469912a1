package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch m.mode {
	case ModeHelp:
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	case ModeDetail:
		b.WriteString(m.viewDetail())
	case ModeAdd:
		b.WriteString(m.viewList())
		b.WriteString("\n")
		b.WriteString(m.viewInput())
	case ModeNormal:
		b.WriteString(m.viewList())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return m.styles.App.Render(b.String())
}

func (m *Model) viewHeader() string {
	title := m.styles.Header.Render("whiteboard")
	if m.container == nil {
		return title
	}
	where := m.container.Config.OutlinePath
	if m.container.AppConfig != nil && m.container.AppConfig.Outline.Store != "" && m.container.AppConfig.Outline.Store != "file" {
		where = m.container.AppConfig.Outline.Store + " store in " + m.container.Config.Root
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.styles.HeaderPath.Render(where))
}

func (m *Model) viewList() string {
	if len(m.taskList.Items()) == 0 {
		return m.styles.HeaderPath.Render("No tasks. Press a to add one.")
	}
	return m.taskList.View()
}

func (m *Model) viewInput() string {
	prompt := "New task"
	if m.addParent != "" {
		prompt = "New child of " + m.addParent
	}
	return m.styles.InputPrompt.Render(prompt) + "\n" + m.styles.Input.Render(m.input.View())
}

func (m *Model) viewDetail() string {
	item, ok := m.SelectedItem()
	if !ok {
		return ""
	}
	title := m.styles.DetailTitle.Render(strings.TrimLeft(item.task.Line(), " "))
	if !item.task.HasBody() {
		return title + "\n" + m.styles.HeaderPath.Render("(no body)")
	}
	return title + "\n" + m.styles.DetailBody.Render(m.detail.View())
}
