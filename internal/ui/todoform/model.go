package todoform

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/theme"
)

const dateLayout = "2006-01-02"

// SubmitMsg carries the changes entered in the form. ID is empty when a
// new todo is being created.
type SubmitMsg struct {
	ID    string
	Patch model.TodoPatch
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title      string
	notes      string
	priority   model.Priority
	dueDate    string
	important  bool
	listID     string
	tags       string
	recurrence model.RecurrenceType
}

// Model is the Bubble Tea model for the todo create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	original *model.TodoItem
	lists    []model.TodoList
	location *time.Location
	width    int
	height   int
}

// New creates a new todo form model. Due dates are read in loc.
func New(loc *time.Location, width, height int) Model {
	if loc == nil {
		loc = time.Local
	}
	return Model{
		fb:       &formBindings{},
		location: loc,
		width:    width,
		height:   height,
	}
}

// SetLists sets the lists offered by the list selector.
func (m *Model) SetLists(lists []model.TodoList) {
	m.lists = lists
}

// StartCreate initializes the form for a new todo in listID.
func (m *Model) StartCreate(listID string) tea.Cmd {
	m.original = nil
	*m.fb = formBindings{listID: listID}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with the values of t.
func (m *Model) StartEdit(t model.TodoItem) tea.Cmd {
	m.original = &t
	*m.fb = bindingsFor(t, m.location)
	m.form = m.buildForm()
	return m.form.Init()
}

// Editing reports whether the form edits an existing todo.
func (m Model) Editing() bool {
	return m.original != nil
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Todo"
	if m.Editing() {
		titleText = "Edit Todo"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return theme.PanelStyle.Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Notes").
			Placeholder("Optional details...").
			Value(&m.fb.notes),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(
				huh.NewOption("None", model.Priority("")),
				huh.NewOption("Low", model.PriorityLow),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("High", model.PriorityHigh),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewSelect[model.RecurrenceType]().
			Title("Repeat").
			Options(
				huh.NewOption("Never", model.RecurrenceType("")),
				huh.NewOption("Daily", model.RecurrenceDaily),
				huh.NewOption("Weekly", model.RecurrenceWeekly),
				huh.NewOption("Monthly", model.RecurrenceMonthly),
				huh.NewOption("Yearly", model.RecurrenceYearly),
			).
			Value(&m.fb.recurrence),
		huh.NewConfirm().
			Title("Important?").
			Value(&m.fb.important),
		huh.NewInput().
			Title("Tags").
			Placeholder("comma separated (optional)").
			Value(&m.fb.tags),
	}
	if listField := m.listField(); listField != nil {
		fields = append(fields, listField)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) listField() huh.Field {
	if len(m.lists) == 0 {
		return nil
	}
	opts := make([]huh.Option[string], len(m.lists))
	for i, l := range m.lists {
		opts[i] = huh.NewOption(l.Name, l.ID)
	}
	return huh.NewSelect[string]().
		Title("List").
		Options(opts...).
		Value(&m.fb.listID)
}

func (m Model) handleSubmit() tea.Cmd {
	patch := buildPatch(*m.fb, m.original, m.location)
	if m.original == nil {
		return func() tea.Msg { return SubmitMsg{Patch: patch} }
	}
	id := m.original.ID
	return func() tea.Msg { return SubmitMsg{ID: id, Patch: patch} }
}

func bindingsFor(t model.TodoItem, loc *time.Location) formBindings {
	fb := formBindings{
		title:     t.Title,
		notes:     t.Notes,
		priority:  t.Priority,
		important: t.Important,
		listID:    t.ListID,
		tags:      strings.Join(t.Tags, ", "),
	}
	if t.DueDate != nil {
		fb.dueDate = t.DueDate.In(loc).Format(dateLayout)
	}
	if t.Recurrence != nil {
		fb.recurrence = t.Recurrence.Type
	}
	return fb
}

// buildPatch turns the form values into a patch. When editing, only the
// fields that differ from original are set.
func buildPatch(fb formBindings, original *model.TodoItem, loc *time.Location) model.TodoPatch {
	var base formBindings
	if original != nil {
		base = bindingsFor(*original, loc)
	}
	creating := original == nil

	var p model.TodoPatch
	if title := strings.TrimSpace(fb.title); creating || title != base.title {
		p.Title = &title
	}
	if fb.notes != base.notes {
		p.Notes = model.Ptr(fb.notes)
	}
	if fb.priority != base.priority {
		p.Priority = model.Ptr(fb.priority)
	}
	if fb.important != base.important {
		p.Important = model.Ptr(fb.important)
	}
	if fb.listID != "" && fb.listID != base.listID {
		p.ListID = model.Ptr(fb.listID)
	}
	if due := strings.TrimSpace(fb.dueDate); due != "" && due != base.dueDate {
		if d, err := time.ParseInLocation(dateLayout, due, loc); err == nil {
			p.DueDate = &d
		}
	}
	if tags := splitTags(fb.tags); !slices.Equal(tags, splitTags(base.tags)) {
		p.Tags = tags
	}
	if fb.recurrence != "" && fb.recurrence != base.recurrence {
		p.Recurrence = &model.TodoRecurrence{Type: fb.recurrence, Interval: 1}
	}
	return p
}

func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
