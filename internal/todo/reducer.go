package todo

import (
	"slices"

	"github.com/nhle/dayboard/internal/model"
)

// Reduce applies an action and returns the next state. It never modifies
// the slices of s.
func Reduce(s State, a Action) State {
	next, _ := reduce(s, a)
	return next
}

// reduce also reports whether anything changed, so the store can skip
// notifying subscribers for no-op actions.
func reduce(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case AddTodo:
		if i := indexOfTodo(s.Todos, a.Todo.ID); i >= 0 {
			s.Todos = replaceAt(s.Todos, i, a.Todo)
		} else {
			s.Todos = appendCopy(s.Todos, a.Todo)
		}
		return s, true

	case UpdateTodo:
		i := indexOfTodo(s.Todos, a.Todo.ID)
		if i < 0 {
			// Server-confirmed item we have not seen yet.
			s.Todos = appendCopy(s.Todos, a.Todo)
			return s, true
		}
		if isStale(s.Todos[i], a.Todo) {
			return s, false
		}
		s.Todos = replaceAt(s.Todos, i, a.Todo)
		return s, true

	case DeleteTodo:
		i := indexOfTodo(s.Todos, a.ID)
		if i < 0 {
			return s, false
		}
		s.Todos = removeAt(s.Todos, i)
		if s.SelectedTodoID == a.ID {
			s.SelectedTodoID = ""
		}
		return s, true

	case AddList:
		if i := indexOfList(s.Lists, a.List.ID); i >= 0 {
			s.Lists = replaceAt(s.Lists, i, a.List)
		} else {
			s.Lists = appendCopy(s.Lists, a.List)
		}
		return s, true

	case UpdateList:
		i := indexOfList(s.Lists, a.List.ID)
		if i < 0 {
			return s, false
		}
		s.Lists = replaceAt(s.Lists, i, a.List)
		return s, true

	case DeleteList:
		// Reserved lists are smart filters and cannot be removed.
		if model.IsReservedList(a.ID) {
			return s, false
		}
		i := indexOfList(s.Lists, a.ID)
		if i < 0 {
			return s, false
		}
		s.Lists = removeAt(s.Lists, i)
		if s.ActiveListID == a.ID {
			s.ActiveListID = model.ListTasks
		}
		return s, true

	case SetActiveList:
		if a.ID == s.ActiveListID {
			return s, false
		}
		s.ActiveListID = a.ID
		return s, true

	case SetFilter:
		if !a.Filter.Valid() || a.Filter == s.Filter {
			return s, false
		}
		s.Filter = a.Filter
		return s, true

	case SelectTodo:
		if a.ID == s.SelectedTodoID {
			return s, false
		}
		s.SelectedTodoID = a.ID
		return s, true

	case Hydrate:
		s.Todos = slices.Clone(a.Todos)
		if s.Todos == nil {
			s.Todos = []model.TodoItem{}
		}
		switch {
		case a.KeepLocalLists:
			s.Lists = mergeLists(s.Lists, a.Lists)
		case len(a.Lists) > 0:
			s.Lists = slices.Clone(a.Lists)
		}
		if a.ActiveListID != "" {
			s.ActiveListID = a.ActiveListID
		}
		if a.Filter.Valid() {
			s.Filter = a.Filter
		}
		if _, ok := s.Todo(s.SelectedTodoID); !ok {
			s.SelectedTodoID = ""
		}
		return s, true
	}

	return s, false
}

// isStale reports whether incoming carries an older modification time than
// current. Items without timestamps are never stale.
func isStale(current, incoming model.TodoItem) bool {
	if current.UpdatedAt.IsZero() || incoming.UpdatedAt.IsZero() {
		return false
	}
	return incoming.UpdatedAt.Before(current.UpdatedAt)
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func replaceAt[T any](items []T, i int, item T) []T {
	out := slices.Clone(items)
	out[i] = item
	return out
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// mergeLists keeps locally known lists the server did not mention, so the
// default tasks list survives a server that only returns user lists.
func mergeLists(local, remote []model.TodoList) []model.TodoList {
	out := make([]model.TodoList, 0, len(local)+len(remote))
	out = append(out, remote...)
	for _, l := range local {
		if indexOfList(remote, l.ID) < 0 {
			out = append(out, l)
		}
	}
	return out
}
