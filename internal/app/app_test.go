package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/todo"
	"github.com/nhle/dayboard/internal/ui/command"
	"github.com/nhle/dayboard/internal/ui/tasklist"
	"github.com/nhle/dayboard/internal/ui/todoform"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeAPI struct {
	created []model.TodoPatch
	err     error
}

func (f *fakeAPI) CreateTodo(_ context.Context, patch model.TodoPatch) (model.TodoItem, error) {
	if f.err != nil {
		return model.TodoItem{}, f.err
	}
	f.created = append(f.created, patch)
	t := model.TodoItem{ID: "new", Title: *patch.Title, ListID: *patch.ListID}
	if patch.Important != nil {
		t.Important = *patch.Important
	}
	return t, nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, id string, patch model.TodoPatch) (model.TodoItem, error) {
	if f.err != nil {
		return model.TodoItem{}, f.err
	}
	t := model.TodoItem{ID: id, Title: "updated"}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	return t, nil
}

func (f *fakeAPI) DeleteTodo(context.Context, string) error { return f.err }

func (f *fakeAPI) ListTodos(context.Context) ([]model.TodoItem, []model.TodoList, error) {
	return nil, nil, f.err
}

func newTestModel(t *testing.T, api *fakeAPI, todos ...model.TodoItem) (Model, *todo.Store) {
	t.Helper()
	st := todo.InitialState()
	st.Todos = todos
	store := todo.NewStore(st, nil)
	m := New(store, todo.NewOperations(api, store, nil), nil)
	m.now = func() time.Time { return testNow }
	t.Cleanup(m.unsubscribe)
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStoreChangesReachTheBoard(t *testing.T) {
	m, store := newTestModel(t, &fakeAPI{})

	store.Dispatch(todo.AddTodo{Todo: model.TodoItem{ID: "a", Title: "first", ListID: model.ListTasks}})

	msg := m.waitForChange()()
	m, _ = update(t, m, msg)

	selected, ok := m.taskList.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected.ID)
}

func TestPublishKeepsOnlyNewestState(t *testing.T) {
	m, store := newTestModel(t, &fakeAPI{})

	store.Dispatch(todo.SetFilter{Filter: model.FilterActive})
	store.Dispatch(todo.SetFilter{Filter: model.FilterCompleted})

	msg := m.waitForChange()().(stateChangedMsg)
	assert.Equal(t, model.FilterCompleted, msg.state.Filter)
}

func TestSubmittedFormCreatesTodo(t *testing.T) {
	api := &fakeAPI{}
	m, store := newTestModel(t, api)
	m.currentView = ViewForm

	m, cmd := update(t, m, todoform.SubmitMsg{Patch: model.TodoPatch{Title: model.Ptr("Buy milk")}})
	assert.Equal(t, ViewList, m.currentView)
	assert.Equal(t, "saving...", m.syncStatus())
	require.NotNil(t, cmd)

	result := cmd()
	m, _ = update(t, m, result)

	assert.Empty(t, m.errMessage)
	assert.Equal(t, 0, m.pending)
	got, ok := store.Todo("new")
	require.True(t, ok)
	assert.Equal(t, model.ListTasks, got.ListID)
}

func TestCreatingFromImportantListMarksImportant(t *testing.T) {
	api := &fakeAPI{}
	m, store := newTestModel(t, api)
	store.Dispatch(todo.SetActiveList{ID: model.ListImportant})
	m, _ = update(t, m, m.waitForChange()())

	_, cmd := update(t, m, todoform.SubmitMsg{Patch: model.TodoPatch{Title: model.Ptr("Call bank")}})
	cmd()

	require.Len(t, api.created, 1)
	assert.Equal(t, true, *api.created[0].Important)
	assert.Equal(t, model.ListTasks, *api.created[0].ListID)
}

func TestFailedOperationShowsError(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	m, _ := newTestModel(t, api, model.TodoItem{ID: "a", Title: "first", ListID: model.ListTasks})
	m.ready = true

	m, cmd := update(t, m, keyPress("x"))
	require.NotNil(t, cmd)
	m, cmd = update(t, m, cmd())
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Contains(t, m.errMessage, "Could not update todo")
	assert.Contains(t, m.View(), "boom")
}

func TestListAndFilterKeys(t *testing.T) {
	m, store := newTestModel(t, &fakeAPI{})

	m, _ = update(t, m, keyPress("f"))
	assert.Equal(t, model.FilterActive, store.State().Filter)

	// tasks is the last list, so the next one wraps to My Day.
	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.ListMyDay, store.State().ActiveListID)
}

func TestHelpToggles(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{})

	m, _ = update(t, m, keyPress("?"))
	assert.Equal(t, ViewHelp, m.currentView)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.currentView)
}

func TestAddOpensForm(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{})

	m, cmd := update(t, m, keyPress("a"))
	assert.Equal(t, ViewForm, m.currentView)
	assert.NotNil(t, cmd)
	assert.False(t, m.form.Editing())
}

func TestNextFilterCycles(t *testing.T) {
	assert.Equal(t, model.FilterActive, nextFilter(model.FilterAll))
	assert.Equal(t, model.FilterCompleted, nextFilter(model.FilterActive))
	assert.Equal(t, model.FilterAll, nextFilter(model.FilterCompleted))
	assert.Equal(t, model.FilterActive, nextFilter(""))
}

func TestDetailFollowsStoreAndClosesOnDelete(t *testing.T) {
	api := &fakeAPI{}
	m, store := newTestModel(t, api, model.TodoItem{ID: "a", Title: "first", ListID: model.ListTasks})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewList, m.currentView, "enter only emits the open message")
	m, cmd := update(t, m, tasklist.OpenMsg{ID: "a"})
	assert.Nil(t, cmd)
	assert.Equal(t, ViewDetail, m.currentView)
	assert.Equal(t, "a", store.State().SelectedTodoID)

	m, cmd = update(t, m, keyPress("d"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	_, found := store.Todo("a")
	assert.False(t, found)

	m, _ = update(t, m, m.waitForChange()())
	assert.Equal(t, ViewList, m.currentView)
	_, showing := m.detail.Todo()
	assert.False(t, showing)
}

func TestPaletteListCommands(t *testing.T) {
	m, store := newTestModel(t, &fakeAPI{})

	m, cmd := update(t, m, keyPress(":"))
	assert.Equal(t, ViewCommand, m.currentView)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, command.CommandMsg{Command: command.Command{Kind: command.AddList, Name: "Groceries"}})
	assert.Equal(t, ViewList, m.currentView)

	st := store.State()
	require.Len(t, st.Lists, 2)
	added := st.Lists[1]
	assert.Equal(t, "Groceries", added.Name)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, added.ID, st.ActiveListID)

	m, _ = update(t, m, m.waitForChange()())
	m, _ = update(t, m, command.CommandMsg{Command: command.Command{Kind: command.DeleteList}})
	assert.Len(t, store.State().Lists, 1)
	assert.Equal(t, model.ListTasks, store.State().ActiveListID)

	m, _ = update(t, m, m.waitForChange()())
	m, _ = update(t, m, command.CommandMsg{Command: command.Command{Kind: command.DeleteList}})
	assert.Contains(t, m.errMessage, "Only your own lists")

	m, _ = update(t, m, command.CommandMsg{Command: command.Command{Kind: command.GotoList, Name: "my day"}})
	assert.Equal(t, model.ListMyDay, store.State().ActiveListID)
}
