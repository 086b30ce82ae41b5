// Package todo holds the in-memory todo state, the reducer that is the only
// way to change it, and the operations that reconcile it with the server.
package todo

import "github.com/nhle/dayboard/internal/model"

// State is the full todo state. Slices are never modified in place; every
// change produces a new backing array, so a changed slice header means
// changed content. Callers must treat State values as read-only.
type State struct {
	Todos          []model.TodoItem `json:"todos"`
	Lists          []model.TodoList `json:"lists"`
	ActiveListID   string           `json:"activeListId"`
	Filter         model.TodoFilter `json:"filter"`
	SelectedTodoID string           `json:"selectedTodoId,omitempty"`
}

// InitialState is an empty store with the default lists.
func InitialState() State {
	return State{
		Todos:        []model.TodoItem{},
		Lists:        model.DefaultLists(),
		ActiveListID: model.ListTasks,
		Filter:       model.FilterAll,
	}
}

// Todo returns the todo with the given id.
func (s State) Todo(id string) (model.TodoItem, bool) {
	if i := indexOfTodo(s.Todos, id); i >= 0 {
		return s.Todos[i], true
	}
	return model.TodoItem{}, false
}

// List returns the list with the given id.
func (s State) List(id string) (model.TodoList, bool) {
	if i := indexOfList(s.Lists, id); i >= 0 {
		return s.Lists[i], true
	}
	return model.TodoList{}, false
}

func indexOfTodo(todos []model.TodoItem, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfList(lists []model.TodoList, id string) int {
	for i := range lists {
		if lists[i].ID == id {
			return i
		}
	}
	return -1
}
