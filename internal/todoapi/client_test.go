package todoapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/httpclient"
	"github.com/nhle/dayboard/internal/model"
)

type recorded struct {
	method string
	path   string
	accept string
	body   map[string]interface{}
}

// newServer answers every request with status and payload and records
// what it received.
func newServer(t *testing.T, status int, payload string) (*Client, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.accept = r.Header.Get("Accept")
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	return NewClient(httpclient.NewClient(nil, time.Second, nil), srv.URL+"/"), rec
}

func TestCreateTodo(t *testing.T) {
	c, rec := newServer(t, http.StatusOK,
		`{"success":true,"todo":{"id":"t1","title":"Buy milk","listId":"tasks","completed":false,"important":false}}`)

	todo, err := c.CreateTodo(context.Background(), model.TodoPatch{
		Title:  model.Ptr("Buy milk"),
		ListID: model.Ptr("tasks"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/todo/", rec.path)
	assert.Equal(t, map[string]interface{}{"title": "Buy milk", "listId": "tasks"}, rec.body)
	assert.Equal(t, model.TodoItem{ID: "t1", Title: "Buy milk", ListID: "tasks"}, todo)
}

func TestUpdateTodoSendsIDWithChanges(t *testing.T) {
	c, rec := newServer(t, http.StatusOK,
		`{"success":true,"todo":{"id":"t1","title":"Buy milk","completed":true}}`)

	todo, err := c.UpdateTodo(context.Background(), "t1", model.TodoPatch{Completed: model.Ptr(true)})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, map[string]interface{}{"id": "t1", "completed": true}, rec.body)
	assert.True(t, todo.Completed)
}

func TestDeleteTodo(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"success":true}`)

	require.NoError(t, c.DeleteTodo(context.Background(), "t1"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "application/json", rec.accept)
	assert.Equal(t, map[string]interface{}{"id": "t1"}, rec.body)
}

func TestListTodos(t *testing.T) {
	c, rec := newServer(t, http.StatusOK,
		`{"success":true,"todos":[{"id":"t1","title":"a"}],"lists":[{"id":"l1","name":"Groceries"}]}`)

	todos, lists, err := c.ListTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "application/json", rec.accept)
	assert.Len(t, todos, 1)
	assert.Equal(t, []model.TodoList{{ID: "l1", Name: "Groceries"}}, lists)
}

func TestUnconfirmedResponsesAreRejected(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "success false", payload: `{"success":false,"message":"nope"}`},
		{name: "success missing", payload: `{"todo":{"id":"t1"}}`},
		{name: "todo missing", payload: `{"success":true}`},
		{name: "todo without id", payload: `{"success":true,"todo":{"title":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newServer(t, http.StatusOK, tt.payload)
			_, err := c.CreateTodo(context.Background(), model.TodoPatch{Title: model.Ptr("x")})
			assert.ErrorIs(t, err, ErrRejected)
		})
	}
}

func TestDeleteWithoutSuccessIsRejected(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{}`)
	assert.ErrorIs(t, c.DeleteTodo(context.Background(), "t1"), ErrRejected)
}

func TestHTTPErrorPassesThrough(t *testing.T) {
	c, _ := newServer(t, http.StatusUnauthorized, `{"message":"session expired"}`)

	_, err := c.UpdateTodo(context.Background(), "t1", model.TodoPatch{})
	var statusErr *httpclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "session expired", statusErr.Message)
}
