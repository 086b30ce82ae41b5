package tasklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/theme"
)

// OpenMsg asks for the detail view of a todo.
type OpenMsg struct{ ID string }

// ToggleMsg asks for the completed flag of a todo to be flipped.
type ToggleMsg struct{ ID string }

// ImportantMsg asks for the important flag of a todo to be flipped.
type ImportantMsg struct{ ID string }

// EditMsg opens the form for a todo.
type EditMsg struct{ Todo model.TodoItem }

// DeleteMsg asks for a todo to be deleted.
type DeleteMsg struct{ ID string }

// Model shows the visible todos of the active list.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	todos       []model.TodoItem
	filter      model.TodoFilter
	searchMode  bool
	searchInput textinput.Model
	query       string
	width       int
	height      int
}

// New creates a todo list model. now drives the overdue markers.
func New(k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	l := list.New([]list.Item{}, ItemDelegate{now: now}, width, height-2)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search todos..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// SetTodos replaces the rows. The cursor stays on the same todo when it
// is still visible.
func (m *Model) SetTodos(title string, filter model.TodoFilter, todos []model.TodoItem) tea.Cmd {
	selected, hadSelection := m.Selected()

	m.list.Title = title
	m.filter = filter
	m.todos = todos
	cmd := m.applyQuery()

	if hadSelection {
		for i, it := range m.list.Items() {
			if it.(TodoItem).Todo.ID == selected.ID {
				m.list.Select(i)
				break
			}
		}
	}
	return cmd
}

// Selected returns the todo under the cursor.
func (m Model) Selected() (model.TodoItem, bool) {
	item, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.TodoItem{}, false
	}
	return item.Todo, true
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Update handles messages for the todo list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.applyQuery()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.applyQuery()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Back):
		if m.query != "" {
			m.query = ""
			return m, m.applyQuery()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m, m.withSelected(func(t model.TodoItem) tea.Msg { return OpenMsg{ID: t.ID} })

	case key.Matches(msg, m.keys.Toggle):
		return m, m.withSelected(func(t model.TodoItem) tea.Msg { return ToggleMsg{ID: t.ID} })

	case key.Matches(msg, m.keys.Important):
		return m, m.withSelected(func(t model.TodoItem) tea.Msg { return ImportantMsg{ID: t.ID} })

	case key.Matches(msg, m.keys.Edit):
		return m, m.withSelected(func(t model.TodoItem) tea.Msg { return EditMsg{Todo: t} })

	case key.Matches(msg, m.keys.Delete):
		return m, m.withSelected(func(t model.TodoItem) tea.Msg { return DeleteMsg{ID: t.ID} })
	}

	// Navigation keys go to the list.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) withSelected(fn func(model.TodoItem) tea.Msg) tea.Cmd {
	t, ok := m.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg { return fn(t) }
}

func (m *Model) applyQuery() tea.Cmd {
	q := strings.ToLower(m.query)
	items := make([]list.Item, 0, len(m.todos))
	for _, t := range m.todos {
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		items = append(items, TodoItem{Todo: t})
	}
	return m.list.SetItems(items)
}

// View renders the todo list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when nothing is visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.query != "" {
		return style.Render(fmt.Sprintf("No todos match %q.\nPress esc to clear the search.", m.query))
	}
	if m.filter != "" && m.filter != model.FilterAll {
		return style.Render(fmt.Sprintf("No %s todos here.\nPress f to change the filter.", m.filter))
	}
	return style.Render("Nothing to do.\n\nPress a to add a todo.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
