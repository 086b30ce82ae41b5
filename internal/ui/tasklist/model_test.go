package tasklist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(todos ...model.TodoItem) Model {
	m := New(keys.DefaultKeyMap(), func() time.Time { return testNow }, 80, 20)
	m.SetTodos("Tasks", model.FilterAll, todos)
	return m
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSelectionFollowsTodoAcrossUpdates(t *testing.T) {
	m := newTestModel(
		model.TodoItem{ID: "a", Title: "first"},
		model.TodoItem{ID: "b", Title: "second"},
	)
	m.list.Select(1)

	m.SetTodos("Tasks", model.FilterAll, []model.TodoItem{
		{ID: "new", Title: "zero"},
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
	})

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", selected.ID)
}

func TestToggleKeyEmitsToggleMsg(t *testing.T) {
	m := newTestModel(model.TodoItem{ID: "a", Title: "first"})

	_, cmd := m.Update(keyPress("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, ToggleMsg{ID: "a"}, cmd())
}

func TestKeysOnEmptyListDoNothing(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(keyPress("d"))
	assert.Nil(t, cmd)
}

func TestSearchNarrowsRows(t *testing.T) {
	m := newTestModel(
		model.TodoItem{ID: "a", Title: "Buy milk"},
		model.TodoItem{ID: "b", Title: "Call mom"},
	)

	m, _ = m.Update(keyPress("/"))
	assert.True(t, m.Searching())
	m.searchInput.SetValue("MILK")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Searching())
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "a", m.list.Items()[0].(TodoItem).Todo.ID)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.list.Items(), 2)
}

func TestRenderTodoMarksOverdue(t *testing.T) {
	due := testNow.Add(-48 * time.Hour)
	line := renderTodo(model.TodoItem{
		Title:   "Pay rent",
		DueDate: &due,
		Steps:   []model.TodoStep{{ID: "s1", Completed: true}, {ID: "s2"}},
	}, false, testNow)

	assert.Contains(t, line, "Pay rent")
	assert.Contains(t, line, "[1/2]")
	assert.Contains(t, line, "OVERDUE")
}

func TestEnterOpensSelectedTodo(t *testing.T) {
	m := newTestModel(model.TodoItem{ID: "a", Title: "first"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, OpenMsg{ID: "a"}, cmd())
}
