package model

// Reserved list identifiers. These are smart lists computed from todo
// fields, never containers the user creates.
const (
	ListMyDay     = "my-day"
	ListImportant = "important"
	ListPlanned   = "planned"
	ListAll       = "all"
	ListTasks     = "tasks"
)

// TodoList is a user-visible container of todos.
type TodoList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// IsReservedList reports whether id names one of the synthetic lists.
func IsReservedList(id string) bool {
	switch id {
	case ListMyDay, ListImportant, ListPlanned, ListAll, ListTasks:
		return true
	}
	return false
}

// DefaultLists returns the lists every store starts with.
func DefaultLists() []TodoList {
	return []TodoList{
		{ID: ListTasks, Name: "Tasks", IsDefault: true},
	}
}

// TodoFilter narrows the todos of the active list by completion state.
type TodoFilter string

const (
	FilterAll       TodoFilter = "all"
	FilterActive    TodoFilter = "active"
	FilterCompleted TodoFilter = "completed"
)

// Valid reports whether f is a known filter.
func (f TodoFilter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Match reports whether the todo passes the completion filter.
// The empty filter behaves like FilterAll.
func (f TodoFilter) Match(t TodoItem) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}
