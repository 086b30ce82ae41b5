package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/theme"
)

// TodoItem wraps a model.TodoItem so it can be used in a bubbles/list.
type TodoItem struct {
	Todo model.TodoItem
}

// FilterValue returns the string used for filtering.
func (i TodoItem) FilterValue() string { return i.Todo.Title }

// ItemDelegate implements list.ItemDelegate for todo rows.
type ItemDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single todo line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TodoItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderTodo(ti.Todo, index == m.Index(), d.now()))
}

func renderTodo(t model.TodoItem, selected bool, now time.Time) string {
	prefix := "○"
	if t.Completed {
		prefix = "✓"
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	if t.Important {
		b.WriteString(theme.ImportantStyle.Render("★"))
		b.WriteString(" ")
	}
	if t.Priority != "" {
		b.WriteString(theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority)))
		b.WriteString(" ")
	}
	b.WriteString(t.Title)

	if done, total := t.StepProgress(); total > 0 {
		fmt.Fprintf(&b, " [%d/%d]", done, total)
	}
	if t.Recurrence != nil {
		b.WriteString(" ↻")
	}
	if t.DueDate != nil {
		b.WriteString(theme.DueDateStyle.Render(" " + t.DueDate.In(now.Location()).Format("Jan 02")))
	}
	if t.IsOverdue(now) {
		b.WriteString(theme.OverdueStyle.Render(" OVERDUE"))
	}

	line := b.String()
	if t.Completed {
		line = theme.DimmedStyle.Render(line)
	}
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// priorityLabel returns a short label for the given priority.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!!"
	case model.PriorityLow:
		return "!"
	default:
		return ""
	}
}
