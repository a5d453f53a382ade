package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tasktable/internal/store"
	"tasktable/internal/task"
)

// Grid columns. Only title, description and status are editable.
const (
	colID = iota
	colTitle
	colDescription
	colStatus
	colDelete
)

var gridHeaders = []string{"Task ID", "Title", "Description", "Status", "Delete"}

// editableCols maps the column cursor to the store field it edits.
var editableCols = []struct {
	col   int
	field store.Field
}{
	{colTitle, store.FieldTitle},
	{colDescription, store.FieldDescription},
	{colStatus, store.FieldStatus},
}

const (
	titleWidth       = 40
	descriptionWidth = 32
)

// editor is the inline editor of one grid cell.
type editor struct {
	active bool
	taskID int
	field  store.Field
	input  textinput.Model
	status task.Status
}

func newEditor() editor {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 500
	return editor{input: in}
}

// begin opens the editor on a task field, prefilled with its value.
func (e *editor) begin(t task.Task, field store.Field) tea.Cmd {
	e.active = true
	e.taskID = t.ID
	e.field = field
	switch field {
	case store.FieldStatus:
		e.status = t.Status
		return nil
	case store.FieldTitle:
		e.input.SetValue(t.Title)
		e.input.Width = titleWidth
	case store.FieldDescription:
		e.input.SetValue(t.Description)
		e.input.Width = descriptionWidth
	}
	e.input.CursorEnd()
	return e.input.Focus()
}

// value returns the edited value in the form store.Update expects.
func (e editor) value() string {
	if e.field == store.FieldStatus {
		return string(e.status)
	}
	return e.input.Value()
}

func (e *editor) close() {
	e.active = false
	e.input.Blur()
	e.input.Reset()
}

// renderGrid draws the page as a five-column table. selRow is the cursor row
// within the page and selCol the focused editable column index.
func renderGrid(page store.Page, selRow, selCol int, ed editor) string {
	rows := make([][]string, 0, len(page.Tasks))
	for i, t := range page.Tasks {
		row := []string{
			strconv.Itoa(t.ID),
			truncate(flatten(t.Title), titleWidth),
			truncate(flatten(t.Description), descriptionWidth),
			string(t.Status),
			"✗",
		}
		if ed.active && i == selRow && ed.taskID == t.ID {
			col := editableCols[selCol].col
			if ed.field == store.FieldStatus {
				row[col] = "‹ " + string(ed.status) + " ›"
			} else {
				row[col] = ed.input.View()
			}
		}
		rows = append(rows, row)
	}

	focusCol := editableCols[selCol].col
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(gridBorderStyle).
		Headers(gridHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case row == selRow && col == focusCol:
				return focusedCellStyle
			case row == selRow:
				return selectedRowStyle
			case col == colStatus && row >= 0 && row < len(page.Tasks):
				return cellStyle.Foreground(statusColor(string(page.Tasks[row].Status)))
			case col == colDelete:
				return cellStyle.Inherit(deleteMarkerStyle)
			default:
				return cellStyle
			}
		}).
		String()
}

// flatten replaces line breaks so a value fits one grid row.
func flatten(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
