// Package tui provides the interactive task table: the remote load on
// start, the editable grid, the new-task form, the filter/search bar,
// the status counters and the success notifications.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasktable/internal/logging"
	"tasktable/internal/store"
	"tasktable/internal/task"
)

// Notification texts.
const (
	msgAdded   = "Task added successfully!"
	msgDeleted = "Task deleted successfully!"
)

// focusArea is the part of the screen receiving key presses.
type focusArea int

const (
	focusGrid focusArea = iota
	focusForm
	focusSearch
	focusEdit
)

// Options configures a Model.
type Options struct {
	PageSize int
	Notify   time.Duration
	Logger   *slog.Logger
}

// tasksLoadedMsg carries the result of the one-time remote load.
type tasksLoadedMsg struct {
	tasks []task.Task
	err   error
}

// Model is the bubbletea model of the task table.
type Model struct {
	ctx  context.Context
	src  task.Source
	log  *slog.Logger
	keys keyMap
	help help.Model

	store    *store.Store
	filter   store.FilterStatus
	search   textinput.Model
	form     form
	editor   editor
	toasts   toasts
	pageSize int

	page  int // 1-based page of the filtered view
	row   int // cursor row within the page
	col   int // index into editableCols
	focus focusArea

	loading bool
	loadErr error
	editErr error
	width   int
}

// New creates the model. The source is read once, when the program starts.
func New(ctx context.Context, src task.Source, opts Options) Model {
	if opts.PageSize < 1 {
		opts.PageSize = store.DefaultPageSize
	}
	if opts.Notify <= 0 {
		opts.Notify = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	search := textinput.New()
	search.Placeholder = "Title or Description"
	search.Prompt = ""
	search.CharLimit = 100
	search.Width = 30

	return Model{
		ctx:      ctx,
		src:      src,
		log:      opts.Logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
		store:    store.New(),
		filter:   store.FilterAll,
		search:   search,
		form:     newForm(),
		editor:   newEditor(),
		toasts:   toasts{ttl: opts.Notify},
		pageSize: opts.PageSize,
		page:     1,
		loading:  true,
	}
}

// Init starts the one-time load.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	ctx, src, log := m.ctx, m.src, m.log
	return func() tea.Msg {
		log.Debug("loading tasks", "source", src.Name())
		tasks, err := src.FetchTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

// Len returns the number of tasks in the store.
func (m Model) Len() int {
	return m.store.Len()
}

// Tasks returns the full, unfiltered task list.
func (m Model) Tasks() []task.Task {
	return m.store.Tasks()
}

// query returns the current filter and search as a store query.
func (m Model) query() store.Query {
	return store.Query{Status: m.filter, Search: m.search.Value()}
}

// visible returns the current page of the filtered view.
func (m Model) visible() store.Page {
	return store.Paginate(store.Filter(m.store.Tasks(), m.query()), m.page, m.pageSize)
}

// selected returns the task under the cursor.
func (m Model) selected() (task.Task, bool) {
	p := m.visible()
	if m.row < 0 || m.row >= len(p.Tasks) {
		return task.Task{}, false
	}
	return p.Tasks[m.row], true
}

// clamp keeps page and row inside the current filtered view.
func (m *Model) clamp() {
	p := m.visible()
	m.page = p.Number
	if m.row >= len(p.Tasks) {
		m.row = len(p.Tasks) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.log.Debug("load failed", "source", m.src.Name(), "err", msg.err)
			m.loadErr = msg.err
			return m, nil
		}
		m.log.Debug("tasks loaded", "source", m.src.Name(), "count", len(msg.tasks))
		m.store.Replace(msg.tasks)
		m.page, m.row = 1, 0
		return m, nil

	case toastExpiredMsg:
		m.toasts.expire(msg.id)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.focus {
		case focusForm:
			return m.updateForm(msg)
		case focusSearch:
			return m.updateSearch(msg)
		case focusEdit:
			return m.updateEditor(msg)
		default:
			return m.updateGrid(msg)
		}
	}

	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.visible().Tasks)-1 {
			m.row++
		}

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}

	case key.Matches(msg, m.keys.Right):
		if m.col < len(editableCols)-1 {
			m.col++
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 1 {
			m.page--
			m.row = 0
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.page < m.visible().Count {
			m.page++
			m.row = 0
		}

	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editErr = nil
		m.focus = focusEdit
		return m, m.editor.begin(t, editableCols[m.col].field)

	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.Delete(t.ID)
		m.log.Debug("task deleted", "id", t.ID)
		m.clamp()
		return m, m.toasts.push(msgDeleted)

	case key.Matches(msg, m.keys.Add):
		m.focus = focusForm
		return m, m.form.focus(formTitle)

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.page, m.row = 1, 0
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form.blur()
		m.focus = focusGrid
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.move(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.move(-1)

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case m.form.focused == formStatus && key.Matches(msg, m.keys.Left):
		m.form.status = m.form.status.Prev()
		return m, nil

	case m.form.focused == formStatus && key.Matches(msg, m.keys.Right):
		m.form.status = m.form.status.Next()
		return m, nil
	}

	return m, m.form.update(msg)
}

// submit appends the draft as a new task. An empty title is ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	t, ok := m.store.Add(m.form.draft())
	if !ok {
		return m, nil
	}
	m.log.Debug("task added", "id", t.ID, "status", t.Status)
	m.form.reset()
	m.clamp()
	cmds := []tea.Cmd{m.toasts.push(msgAdded)}
	if m.form.focused != formTitle {
		cmds = append(cmds, m.form.focus(formTitle))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Submit):
		m.search.Blur()
		m.focus = focusGrid
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.search.Reset()
		m.page, m.row = 1, 0
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.page, m.row = 1, 0
	}
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editor.close()
		m.focus = focusGrid
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if err := m.store.Update(m.editor.taskID, m.editor.field, m.editor.value()); err != nil {
			m.log.Debug("edit rejected", "id", m.editor.taskID, "field", m.editor.field, "err", err)
			m.editErr = err
		} else {
			m.log.Debug("task edited", "id", m.editor.taskID, "field", m.editor.field)
		}
		m.editor.close()
		m.focus = focusGrid
		m.clamp()
		return m, nil
	}

	if m.editor.field == store.FieldStatus {
		switch {
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
			m.editor.status = m.editor.status.Prev()
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
			m.editor.status = m.editor.status.Next()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor.input, cmd = m.editor.input.Update(msg)
	return m, cmd
}
