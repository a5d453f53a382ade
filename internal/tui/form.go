package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasktable/internal/task"
)

// formField indexes the controls of the new-task form.
type formField int

const (
	formTitle formField = iota
	formDescription
	formStatus
	formSubmit
	formFieldCount
)

// form holds the draft of the next task, bound to three controls.
type form struct {
	title       textinput.Model
	description textinput.Model
	status      task.Status
	focused     formField
	active      bool
}

func newForm() form {
	title := textinput.New()
	title.Placeholder = "Task Title"
	title.CharLimit = 200
	title.Width = 28
	title.Prompt = ""

	desc := textinput.New()
	desc.Placeholder = "Task Description"
	desc.CharLimit = 500
	desc.Width = 36
	desc.Prompt = ""

	return form{
		title:       title,
		description: desc,
		status:      task.StatusToDo,
	}
}

// draft returns the current form values.
func (f form) draft() task.Draft {
	return task.Draft{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Status:      f.status,
	}
}

// reset clears the draft back to {"", "", To Do}.
func (f *form) reset() {
	f.title.Reset()
	f.description.Reset()
	f.status = task.StatusToDo
}

// focus activates the form on the given control.
func (f *form) focus(field formField) tea.Cmd {
	f.active = true
	f.focused = field
	f.title.Blur()
	f.description.Blur()
	switch field {
	case formTitle:
		return f.title.Focus()
	case formDescription:
		return f.description.Focus()
	}
	return nil
}

// blur deactivates the form, keeping the draft.
func (f *form) blur() {
	f.active = false
	f.title.Blur()
	f.description.Blur()
}

// move shifts focus by delta controls, wrapping around.
func (f *form) move(delta int) tea.Cmd {
	next := (int(f.focused) + delta + int(formFieldCount)) % int(formFieldCount)
	return f.focus(formField(next))
}

// update forwards a message to the focused text input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focused {
	case formTitle:
		f.title, cmd = f.title.Update(msg)
	case formDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (f form) view() string {
	label := func(field formField, text string) string {
		if f.active && f.focused == field {
			return focusedLabelStyle.Render(text)
		}
		return labelStyle.Render(text)
	}

	status := "‹ " + string(f.status) + " ›"
	if f.active && f.focused == formStatus {
		status = focusedLabelStyle.Render(status)
	}

	button := buttonStyle.Render("Add Task")
	if f.active && f.focused == formSubmit {
		button = focusedButtonStyle.Render("Add Task")
	}

	return strings.Join([]string{
		label(formTitle, "Title:") + " " + f.title.View(),
		label(formDescription, "Description:") + " " + f.description.View(),
		label(formStatus, "Status:") + " " + status,
		button,
	}, "   ")
}
