package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
	appsync "github.com/nhle/dayboard/internal/sync"
	"github.com/nhle/dayboard/internal/theme"
	"github.com/nhle/dayboard/internal/todo"
	"github.com/nhle/dayboard/internal/ui"
	"github.com/nhle/dayboard/internal/ui/command"
	"github.com/nhle/dayboard/internal/ui/detail"
	helpview "github.com/nhle/dayboard/internal/ui/help"
	"github.com/nhle/dayboard/internal/ui/tasklist"
	"github.com/nhle/dayboard/internal/ui/todoform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewHelp
	ViewCommand
)

// smartLists are shown above the user lists, in this order.
var smartLists = []model.TodoList{
	{ID: model.ListMyDay, Name: "My Day"},
	{ID: model.ListImportant, Name: "Important"},
	{ID: model.ListPlanned, Name: "Planned"},
	{ID: model.ListAll, Name: "All"},
}

var filterCycle = []model.TodoFilter{model.FilterAll, model.FilterActive, model.FilterCompleted}

// stateChangedMsg carries the latest store state into the update loop.
type stateChangedMsg struct {
	state todo.State
}

// Model is the root Bubble Tea model. It renders the todo store and runs
// todo operations as commands.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	store       *todo.Store
	ops         *todo.Operations
	poller      *appsync.Poller
	keys        *keys.KeyMap
	shortHelp   help.Model
	taskList    tasklist.Model
	detail      detail.Model
	form        todoform.Model
	helpView    helpview.Model
	palette     command.Model
	state       todo.State
	changes     chan todo.State
	unsubscribe func()
	now         func() time.Time
	ready       bool
	pending     int
	errMessage  string
}

// New creates the root model. poller may be nil, in which case the board
// only refreshes when asked to.
func New(store *todo.Store, ops *todo.Operations, poller *appsync.Poller) Model {
	k := keys.DefaultKeyMap()
	now := time.Now

	m := Model{
		currentView: ViewList,
		layout:      ui.NewLayout(80, 24),
		store:       store,
		ops:         ops,
		poller:      poller,
		keys:        k,
		shortHelp:   help.New(),
		taskList:    tasklist.New(k, func() time.Time { return now() }, 60, 22),
		detail:      detail.New(k, func() time.Time { return now() }, 60, 22),
		form:        todoform.New(time.Local, 60, 22),
		helpView:    helpview.New(k, 60, 22),
		palette:     command.New(60, 10),
		state:       store.State(),
		changes:     make(chan todo.State, 1),
		now:         now,
	}
	m.unsubscribe = store.Subscribe(m.publish)
	m.syncTaskList()
	return m
}

// publish hands the newest state to the update loop. It runs under the
// store's dispatch lock, so it never blocks: an unread older state is
// replaced.
func (m Model) publish(st todo.State) {
	for {
		select {
		case m.changes <- st:
			return
		default:
		}
		select {
		case <-m.changes:
		default:
		}
	}
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return stateChangedMsg{state: st}
	}
}

// Init starts listening for store changes and starts background refresh.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForChange()}
	if m.poller != nil {
		cmds = append(cmds, m.poller.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.taskList.SetSize(m.layout.MainWidth(), m.layout.ContentHeight())
		m.detail.SetSize(m.layout.MainWidth(), m.layout.ContentHeight())
		m.form.SetSize(m.layout.MainWidth(), m.layout.ContentHeight())
		m.helpView.SetSize(m.layout.Width, m.layout.ContentHeight())
		m.palette.SetSize(m.layout.MainWidth(), m.layout.ContentHeight())
		m.shortHelp.Width = m.layout.Width
		if m.currentView == ViewForm {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m, nil

	case stateChangedMsg:
		m.state = msg.state
		m.syncDetail()
		return m, tea.Batch(m.syncTaskList(), m.waitForChange())

	case appsync.SyncResultMsg:
		switch {
		case msg.AuthExpired:
			m.errMessage = "Session expired. Run 'dayboard login' to sign in again."
		case msg.Error != nil:
			m.errMessage = "Refresh failed: " + msg.Error.Error()
		default:
			m.errMessage = ""
		}
		return m, m.poller.WaitForNextResult()

	case opResultMsg:
		m.pending--
		if msg.err != nil {
			m.errMessage = fmt.Sprintf("Could not %s: %v", msg.verb, msg.err)
		} else {
			m.errMessage = ""
		}
		return m, nil

	case command.CommandMsg:
		m.currentView = ViewList
		return m.execute(msg.Command)

	case tasklist.OpenMsg:
		t, ok := m.store.Todo(msg.ID)
		if !ok {
			return m, nil
		}
		m.currentView = ViewDetail
		m.detail.SetTodo(&t, m.listName(t.ListID))
		m.store.Dispatch(todo.SelectTodo{ID: msg.ID})
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		m.detail.SetTodo(nil, "")
		m.store.Dispatch(todo.SelectTodo{ID: ""})
		return m, nil

	case tasklist.ToggleMsg:
		return m.run("update todo", m.toggleComplete(msg.ID))

	case tasklist.ImportantMsg:
		return m.run("update todo", m.toggleImportant(msg.ID))

	case tasklist.DeleteMsg:
		return m.run("delete todo", m.deleteTodo(msg.ID))

	case tasklist.EditMsg:
		m.currentView = ViewForm
		m.form.SetLists(m.state.Lists)
		return m, m.form.StartEdit(msg.Todo)

	case todoform.SubmitMsg:
		m.currentView = m.afterForm()
		if msg.ID == "" {
			return m.run("create todo", m.createTodo(msg.Patch))
		}
		if msg.Patch.IsEmpty() {
			return m, nil
		}
		return m.run("update todo", m.updateTodo(msg.ID, msg.Patch))

	case todoform.CancelMsg:
		m.currentView = m.afterForm()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		switch m.currentView {
		case ViewHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
				m.currentView = ViewList
			}
			return m, nil
		case ViewCommand:
			if key.Matches(msg, m.keys.Back) {
				m.currentView = ViewList
				return m, nil
			}
		case ViewList:
			if !m.taskList.Searching() {
				if next, cmd, handled := m.handleListKeys(msg); handled {
					return next, cmd
				}
			}
		case ViewDetail:
			if next, cmd, handled := m.handleDetailKeys(msg); handled {
				return next, cmd
			}
		}
	}

	return m.updateActiveView(msg)
}

// handleListKeys processes the board-level keys of the list view. Keys
// that target a single todo fall through to the task list.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit(), true

	case key.Matches(msg, m.keys.Help):
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.currentView = ViewCommand
		return m, m.palette.Focus(), true

	case key.Matches(msg, m.keys.Add):
		m.currentView = ViewForm
		m.form.SetLists(m.state.Lists)
		return m, m.form.StartCreate(createListID(m.state.ActiveListID)), true

	case key.Matches(msg, m.keys.NextList):
		m.store.Dispatch(todo.SetActiveList{ID: m.neighborList(1)})
		return m, nil, true

	case key.Matches(msg, m.keys.PrevList):
		m.store.Dispatch(todo.SetActiveList{ID: m.neighborList(-1)})
		return m, nil, true

	case key.Matches(msg, m.keys.Filter):
		m.store.Dispatch(todo.SetFilter{Filter: nextFilter(m.state.Filter)})
		return m, nil, true

	case key.Matches(msg, m.keys.Refresh):
		next, cmd := m.sync()
		return next, cmd, true
	}
	return m, nil, false
}

// handleDetailKeys applies the todo keys to the todo on display.
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	t, ok := m.detail.Todo()
	if !ok {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		next, cmd := m.run("update todo", m.toggleComplete(t.ID))
		return next, cmd, true

	case key.Matches(msg, m.keys.Important):
		next, cmd := m.run("update todo", m.toggleImportant(t.ID))
		return next, cmd, true

	case key.Matches(msg, m.keys.Delete):
		next, cmd := m.run("delete todo", m.deleteTodo(t.ID))
		return next, cmd, true

	case key.Matches(msg, m.keys.Edit):
		m.currentView = ViewForm
		m.form.SetLists(m.state.Lists)
		return m, m.form.StartEdit(t), true
	}
	return m, nil, false
}

// afterForm is the view to return to once the form closes.
func (m Model) afterForm() ViewState {
	if _, ok := m.detail.Todo(); ok {
		return ViewDetail
	}
	return ViewList
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewCommand:
		m.palette, cmd = m.palette.Update(msg)
	}

	return m, cmd
}

func (m *Model) quit() tea.Cmd {
	if m.poller != nil {
		m.poller.Stop()
	}
	m.unsubscribe()
	return tea.Quit
}

// syncDetail refreshes the todo on display and leaves the detail view
// once the todo is gone.
func (m *Model) syncDetail() {
	cur, ok := m.detail.Todo()
	if !ok {
		return
	}
	t, ok := m.state.Todo(cur.ID)
	if !ok {
		m.detail.SetTodo(nil, "")
		if m.currentView == ViewDetail {
			m.currentView = ViewList
		}
		return
	}
	m.detail.SetTodo(&t, m.listName(t.ListID))
}

// syncTaskList feeds the visible todos of the current state to the list.
func (m *Model) syncTaskList() tea.Cmd {
	title := m.listName(m.state.ActiveListID)
	return m.taskList.SetTodos(title, m.state.Filter, todo.VisibleTodos(m.state, m.now()))
}

func (m Model) allLists() []model.TodoList {
	out := make([]model.TodoList, 0, len(smartLists)+len(m.state.Lists))
	out = append(out, smartLists...)
	return append(out, m.state.Lists...)
}

func (m Model) listName(id string) string {
	for _, l := range m.allLists() {
		if l.ID == id {
			return l.Name
		}
	}
	return id
}

// neighborList returns the id of the list step positions away from the
// active one, wrapping around.
func (m Model) neighborList(step int) string {
	lists := m.allLists()
	idx := 0
	for i, l := range lists {
		if l.ID == m.state.ActiveListID {
			idx = i
			break
		}
	}
	idx = (idx + step + len(lists)) % len(lists)
	return lists[idx].ID
}

func nextFilter(f model.TodoFilter) model.TodoFilter {
	for i, candidate := range filterCycle {
		if candidate == f {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return model.FilterActive
}

// createListID is the list a new todo lands in when created from the
// list with the given id.
func createListID(activeID string) string {
	if model.IsReservedList(activeID) {
		return model.ListTasks
	}
	return activeID
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Dayboard", m.syncStatus())
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.errMessage)

	var content string
	switch m.currentView {
	case ViewHelp:
		content = m.helpView.View()
	case ViewDetail:
		content = m.layout.RenderColumns(m.renderSidebar(), m.detail.View())
	case ViewForm:
		content = m.layout.RenderColumns(m.renderSidebar(), m.form.View())
	case ViewCommand:
		content = m.layout.RenderColumns(m.renderSidebar(), m.palette.View())
	default:
		content = m.layout.RenderColumns(m.renderSidebar(), m.taskList.View())
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderSidebar lists the smart lists and user lists with open counts.
func (m Model) renderSidebar() string {
	counts := todo.OpenCounts(m.state, m.now())

	var b strings.Builder
	for i, l := range m.allLists() {
		if i == len(smartLists) {
			b.WriteString("\n")
		}
		name := theme.ListColorStyle(l.Color).Render(l.Name)
		line := fmt.Sprintf("%s %s", name, theme.HelpStyle.Render(fmt.Sprint(counts[l.ID])))
		if l.ID == m.state.ActiveListID {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if f := m.state.Filter; f != "" && f != model.FilterAll {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render("filter: " + string(f)))
	}
	return b.String()
}

// syncStatus returns a short string describing server activity.
func (m Model) syncStatus() string {
	if m.pending > 0 || m.ops.Loading() {
		return "saving..."
	}
	if m.poller == nil {
		return "manual refresh"
	}

	status := m.poller.Status()
	switch status.State {
	case appsync.SyncRunning:
		return "syncing..."
	case appsync.SyncError:
		return "offline"
	}
	if status.LastSync.IsZero() {
		return ""
	}
	return "synced " + status.LastSync.Format("15:04")
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewDetail:
		return "esc back | e edit | space toggle | i important | d delete"
	case ViewCommand:
		return "enter run | tab complete | esc close"
	default:
		if m.taskList.Searching() {
			return "enter apply | esc clear"
		}
		return m.shortHelp.ShortHelpView(m.keys.ShortHelp())
	}
}
