package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/dayboard/internal/model"
)

func ids(todos []model.TodoItem) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestVisibleTodos(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	today := now.Add(2 * time.Hour)
	tomorrow := now.AddDate(0, 0, 1)

	s := InitialState()
	s.Lists = append(s.Lists, model.TodoList{ID: "work", Name: "Work"})
	s.Todos = []model.TodoItem{
		{ID: "a", ListID: model.ListTasks, DueDate: &today},
		{ID: "b", ListID: "work", Important: true},
		{ID: "c", ListID: model.ListTasks, DueDate: &tomorrow, Completed: true},
		{ID: "d", ListID: "work"},
		{ID: "e"},
	}

	tests := []struct {
		list   string
		filter model.TodoFilter
		want   []string
	}{
		{list: model.ListTasks, filter: model.FilterAll, want: []string{"a", "c", "e"}},
		{list: "work", filter: model.FilterAll, want: []string{"b", "d"}},
		{list: model.ListMyDay, filter: model.FilterAll, want: []string{"a"}},
		{list: model.ListImportant, filter: model.FilterAll, want: []string{"b"}},
		{list: model.ListPlanned, filter: model.FilterAll, want: []string{"a", "c"}},
		{list: model.ListAll, filter: model.FilterActive, want: []string{"a", "b", "d", "e"}},
		{list: model.ListAll, filter: model.FilterCompleted, want: []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.list+"/"+string(tt.filter), func(t *testing.T) {
			st := s
			st.ActiveListID = tt.list
			st.Filter = tt.filter
			assert.Equal(t, tt.want, ids(VisibleTodos(st, now)))
		})
	}

	counts := OpenCounts(s, now)
	assert.Equal(t, 2, counts[model.ListTasks])
	assert.Equal(t, 2, counts["work"])
	assert.Equal(t, 4, counts[model.ListAll])
	assert.Equal(t, 1, counts[model.ListImportant])
}

func TestOrphanTodos(t *testing.T) {
	s := InitialState()
	s.Todos = []model.TodoItem{
		{ID: "a", ListID: model.ListTasks},
		{ID: "b", ListID: model.ListImportant},
		{ID: "c", ListID: "gone"},
		{ID: "d"},
	}
	assert.Equal(t, []string{"c"}, ids(OrphanTodos(s)))
}
