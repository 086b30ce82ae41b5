package todo

import (
	"time"

	"github.com/nhle/dayboard/internal/model"
)

// InList reports whether t belongs to listID, resolving the smart lists
// against now.
func InList(t model.TodoItem, listID string, now time.Time) bool {
	switch listID {
	case model.ListAll:
		return true
	case model.ListMyDay:
		return t.DueDate != nil && sameDay(t.DueDate.In(now.Location()), now)
	case model.ListImportant:
		return t.Important
	case model.ListPlanned:
		return t.DueDate != nil
	default:
		return homeList(t) == listID
	}
}

// homeList is the list a todo is filed under. Todos created without a
// list belong to Tasks.
func homeList(t model.TodoItem) string {
	if t.ListID == "" {
		return model.ListTasks
	}
	return t.ListID
}

// VisibleTodos returns the todos of the active list that pass the filter,
// in store order.
func VisibleTodos(s State, now time.Time) []model.TodoItem {
	out := make([]model.TodoItem, 0, len(s.Todos))
	for _, t := range s.Todos {
		if InList(t, s.ActiveListID, now) && s.Filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// OpenCounts returns the number of incomplete todos per list, including
// the smart lists.
func OpenCounts(s State, now time.Time) map[string]int {
	ids := []string{model.ListMyDay, model.ListImportant, model.ListPlanned, model.ListAll}
	for _, l := range s.Lists {
		ids = append(ids, l.ID)
	}

	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		counts[id] = 0
		for _, t := range s.Todos {
			if !t.Completed && InList(t, id, now) {
				counts[id]++
			}
		}
	}
	return counts
}

// OrphanTodos returns todos whose list id matches neither a known list nor
// a reserved one.
func OrphanTodos(s State) []model.TodoItem {
	var out []model.TodoItem
	for _, t := range s.Todos {
		id := homeList(t)
		if model.IsReservedList(id) {
			continue
		}
		if _, ok := s.List(id); !ok {
			out = append(out, t)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
