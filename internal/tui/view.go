package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"tasktable/internal/store"
	"tasktable/internal/task"
)

// View renders the whole table screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Task List Management"))
	b.WriteString("\n\n")

	for _, t := range m.toasts.visible() {
		b.WriteString(toastStyle.Render("✓ " + t.text))
		b.WriteString("\n")
	}
	if m.loadErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("failed to load tasks: %v", m.loadErr)))
		b.WriteString("\n")
	}
	if m.editErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("edit rejected: %v", m.editErr)))
		b.WriteString("\n")
	}

	b.WriteString(m.form.view())
	b.WriteString("\n\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")
	b.WriteString(renderCounters(store.Count(m.store.Tasks())))
	b.WriteString("\n")

	page := m.visible()
	switch {
	case m.loading:
		b.WriteString(infoStyle.Render(fmt.Sprintf("Loading tasks from %s...", m.src.Name())))
	case len(page.Tasks) == 0 && m.store.Len() > 0:
		b.WriteString(infoStyle.Render("No tasks match the current filter."))
	case len(page.Tasks) == 0:
		b.WriteString(infoStyle.Render("No tasks."))
	default:
		b.WriteString(renderGrid(page, m.row, m.col, m.editor))
	}
	b.WriteString("\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("Page %d/%d · %d of %d tasks", page.Number, page.Count, page.Total, m.store.Len())))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderFilterBar() string {
	filterLabel := labelStyle.Render("Filter:")
	searchLabel := labelStyle.Render("Search:")
	if m.focus == focusSearch {
		searchLabel = focusedLabelStyle.Render("Search:")
	}

	options := make([]string, 0, len(store.FilterOptions))
	for _, o := range store.FilterOptions {
		if o == m.filter {
			options = append(options, focusedLabelStyle.Render("["+string(o)+"]"))
		} else {
			options = append(options, dimStyle.Render(string(o)))
		}
	}

	return filterLabel + " " + strings.Join(options, " ") + "     " + searchLabel + " " + m.search.View()
}

// renderCounters draws one card per status with its count.
func renderCounters(c store.Counts) string {
	cards := make([]string, 0, len(task.Statuses))
	for _, st := range task.Statuses {
		title := lipgloss.NewStyle().Bold(true).Foreground(statusColor(string(st))).Render(string(st))
		count := cardCountStyle.Render(strconv.Itoa(c[st]))
		cards = append(cards, cardStyle.Render(title+"\n"+count))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderHelp() string {
	var km help.KeyMap = m.keys
	switch m.focus {
	case focusForm:
		km = inputHelp{keyMap: m.keys, fields: true}
	case focusSearch, focusEdit:
		km = inputHelp{keyMap: m.keys}
	}
	return m.help.View(km)
}
