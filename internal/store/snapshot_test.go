package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/todo"
	"github.com/nhle/dayboard/tests/testutil"
)

func TestLoadTodoStateWithoutSnapshot(t *testing.T) {
	s := testutil.NewTestStore(t)

	st, found, err := s.LoadTodoState(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, todo.InitialState(), st)
}

func TestMirrorTodoState(t *testing.T) {
	s := testutil.NewTestStore(t)
	ts := todo.NewStore(todo.InitialState(), nil)

	stop := s.MirrorTodoState(ts, nil)
	ts.Dispatch(todo.AddList{List: model.TodoList{ID: "work", Name: "Work"}})
	ts.Dispatch(todo.AddTodo{Todo: model.TodoItem{ID: "t1", Title: "Ship it", ListID: "work"}})
	ts.Dispatch(todo.SetActiveList{ID: "work"})
	ts.Dispatch(todo.SelectTodo{ID: "t1"})
	stop()

	// Not mirrored after stop.
	ts.Dispatch(todo.AddTodo{Todo: model.TodoItem{ID: "t2"}})

	st, found, err := s.LoadTodoState(context.Background())
	require.NoError(t, err)
	require.True(t, found)

	assert.Len(t, st.Todos, 1)
	assert.Equal(t, "Ship it", st.Todos[0].Title)
	assert.Equal(t, "work", st.ActiveListID)
	assert.Len(t, st.Lists, 2)
	assert.Empty(t, st.SelectedTodoID)
}
