package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/theme"
)

const timeLayout = "2006-01-02 15:04"

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model shows every field of a single todo.
type Model struct {
	todo     *model.TodoItem
	listName string
	viewport viewport.Model
	keys     *keys.KeyMap
	now      func() time.Time
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		now:      now,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m, func() tea.Msg { return BackMsg{} }
	}

	// Scrolling (j/k, up/down, pgup/pgdn) goes to the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.todo == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No todo selected")
	}
	return m.viewport.View()
}

// SetTodo shows t, or clears the view when t is nil. The scroll position
// is kept when the same todo is shown again.
func (m *Model) SetTodo(t *model.TodoItem, listName string) {
	sameTodo := m.todo != nil && t != nil && m.todo.ID == t.ID
	m.todo = t
	m.listName = listName
	m.viewport.SetContent(m.renderContent())
	if !sameTodo {
		m.viewport.GotoTop()
	}
}

// Todo returns the todo on display.
func (m Model) Todo() (model.TodoItem, bool) {
	if m.todo == nil {
		return model.TodoItem{}, false
	}
	return *m.todo, true
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}

func (m Model) renderContent() string {
	if m.todo == nil {
		return ""
	}
	t := *m.todo
	now := m.now()

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(11)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	muted := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)

	var sections []string
	sections = append(sections, headerStyle.Render(t.Title))

	var badges []string
	if t.Completed {
		badges = append(badges, lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("done"))
	} else {
		badges = append(badges, lipgloss.NewStyle().Foreground(theme.ColorBlue).Render("open"))
	}
	if t.Important {
		badges = append(badges, theme.ImportantStyle.Render("★ important"))
	}
	if t.Priority != "" {
		badges = append(badges, theme.PriorityStyle(t.Priority).Render(string(t.Priority)))
	}
	if t.IsOverdue(now) {
		badges = append(badges, theme.OverdueStyle.Render("overdue"))
	}
	sections = append(sections, strings.Join(badges, "  "), "")

	field := func(name, value string) {
		if value != "" {
			sections = append(sections, metaStyle.Render(name+":")+" "+value)
		}
	}
	field("List", m.listName)
	if t.DueDate != nil {
		field("Due", t.DueDate.In(now.Location()).Format("Mon Jan 2 2006"))
	}
	if t.ReminderDate != nil {
		field("Reminder", t.ReminderDate.In(now.Location()).Format(timeLayout))
	}
	if t.Recurrence != nil {
		field("Repeats", describeRecurrence(t, now))
	}
	field("Tags", strings.Join(t.Tags, ", "))
	if !t.CreatedAt.IsZero() {
		field("Created", t.CreatedAt.In(now.Location()).Format(timeLayout))
	}
	if !t.UpdatedAt.IsZero() {
		field("Updated", t.UpdatedAt.In(now.Location()).Format(timeLayout))
	}

	separator := lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))

	if len(t.Steps) > 0 {
		done, total := t.StepProgress()
		sections = append(sections, "", separator, "",
			headerStyle.Render(fmt.Sprintf("Steps (%d/%d)", done, total)))
		for _, s := range t.Steps {
			box := "[ ]"
			if s.Completed {
				box = "[x]"
			}
			sections = append(sections, box+" "+s.Title)
		}
	}

	sections = append(sections, "", separator, "", headerStyle.Render("Notes"))
	notes := t.Notes
	if notes == "" {
		notes = t.Description
	}
	if notes == "" {
		notes = muted.Render("No notes")
	}
	sections = append(sections, notes)

	if len(t.Files) > 0 {
		sections = append(sections, "", headerStyle.Render(fmt.Sprintf("Files (%d)", len(t.Files))))
		for _, f := range t.Files {
			line := f.Name
			if f.Size > 0 {
				line += muted.Render(fmt.Sprintf(" %s", humanSize(f.Size)))
			}
			if f.URL != "" {
				line += " " + muted.Render(f.URL)
			}
			sections = append(sections, line)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// describeRecurrence names the cadence and the next occurrence after now.
func describeRecurrence(t model.TodoItem, now time.Time) string {
	r := *t.Recurrence
	desc := string(r.Type)
	if r.Interval > 1 {
		desc = fmt.Sprintf("%s (every %d)", desc, r.Interval)
	}
	if len(r.DaysOfWeek) > 0 {
		desc += " on " + strings.Join(r.DaysOfWeek, ", ")
	}

	start := now
	if t.DueDate != nil {
		start = *t.DueDate
	}
	next, ok, err := r.Next(start, now)
	switch {
	case err != nil:
		return desc + " (invalid: " + err.Error() + ")"
	case ok:
		return desc + ", next " + next.In(now.Location()).Format("Mon Jan 2")
	default:
		return desc + ", ended"
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
