package model

import "time"

// Priority is the optional urgency label of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is empty or one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TodoItem is a single task as returned by the remote Todo API.
type TodoItem struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Notes        string          `json:"notes,omitempty"`
	Description  string          `json:"description,omitempty"`
	Completed    bool            `json:"completed"`
	Important    bool            `json:"important"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	ReminderDate *time.Time      `json:"reminderDate,omitempty"`
	ListID       string          `json:"listId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitzero"`
	UpdatedAt    time.Time       `json:"updatedAt,omitzero"`
	Steps        []TodoStep      `json:"steps,omitempty"`
	Recurrence   *TodoRecurrence `json:"recurrence,omitempty"`
	Files        []TodoFile      `json:"files,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Priority     Priority        `json:"priority,omitempty"`
}

// TodoStep is an ordered sub-task of a todo.
type TodoStep struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TodoFile is attachment metadata. The content itself lives remotely.
type TodoFile struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// StepProgress returns how many steps are completed out of the total.
func (t TodoItem) StepProgress() (done, total int) {
	for _, s := range t.Steps {
		if s.Completed {
			done++
		}
	}
	return done, len(t.Steps)
}

// IsOverdue reports whether the todo is open and its due date has passed.
func (t TodoItem) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// HasTag reports whether the todo carries the given label.
func (t TodoItem) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// TodoPatch is a partial todo. Nil fields are left out of the request body,
// so the same type serves as the create payload and the update payload.
type TodoPatch struct {
	Title        *string         `json:"title,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Completed    *bool           `json:"completed,omitempty"`
	Important    *bool           `json:"important,omitempty"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	ReminderDate *time.Time      `json:"reminderDate,omitempty"`
	ListID       *string         `json:"listId,omitempty"`
	Steps        []TodoStep      `json:"steps,omitempty"`
	Recurrence   *TodoRecurrence `json:"recurrence,omitempty"`
	Files        []TodoFile      `json:"files,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Priority     *Priority       `json:"priority,omitempty"`
}

// IsEmpty reports whether the patch sets no field at all.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Notes == nil && p.Description == nil &&
		p.Completed == nil && p.Important == nil && p.DueDate == nil &&
		p.ReminderDate == nil && p.ListID == nil && p.Steps == nil &&
		p.Recurrence == nil && p.Files == nil && p.Tags == nil &&
		p.Priority == nil
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
