// Package todoapi talks to the remote Todo REST API.
package todoapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nhle/dayboard/internal/httpclient"
	"github.com/nhle/dayboard/internal/model"
)

const todoPath = "/todo/"

// acceptJSON is sent with every call; the backend answers HTML error pages
// to clients that don't ask for JSON.
var acceptJSON = httpclient.WithHeader("Accept", "application/json")

// ErrRejected is returned when the server answers 2xx without confirming
// success.
var ErrRejected = errors.New("rejected by server")

// Client implements the todo operations' API over HTTP.
type Client struct {
	http    *httpclient.Client
	baseURL string
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(http *httpclient.Client, baseURL string) *Client {
	return &Client{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) url() string {
	return c.baseURL + todoPath
}

// CreateTodo posts a partial todo and returns the created todo.
func (c *Client) CreateTodo(ctx context.Context, patch model.TodoPatch) (model.TodoItem, error) {
	resp, err := c.http.Post(ctx, c.url(), patch, acceptJSON)
	if err != nil {
		return model.TodoItem{}, err
	}
	return decodeTodo(resp)
}

// UpdateTodo puts the changed fields of id and returns the updated todo.
func (c *Client) UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (model.TodoItem, error) {
	resp, err := c.http.Put(ctx, c.url(), updateRequest{ID: id, TodoPatch: patch}, acceptJSON)
	if err != nil {
		return model.TodoItem{}, err
	}
	return decodeTodo(resp)
}

// DeleteTodo removes id.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	resp, err := c.http.Delete(ctx, c.url(), deleteRequest{ID: id}, acceptJSON)
	if err != nil {
		return err
	}

	var out deleteResponse
	if err := resp.Decode(&out); err != nil {
		return err
	}
	return checkSuccess(out.Success, out.Message)
}

// ListTodos returns every todo and list of the signed-in user.
func (c *Client) ListTodos(ctx context.Context) ([]model.TodoItem, []model.TodoList, error) {
	resp, err := c.http.Get(ctx, c.url(), acceptJSON)
	if err != nil {
		return nil, nil, err
	}

	var out listResponse
	if err := resp.Decode(&out); err != nil {
		return nil, nil, err
	}
	if err := checkSuccess(out.Success, out.Message); err != nil {
		return nil, nil, err
	}
	return out.Todos, out.Lists, nil
}

func decodeTodo(resp *httpclient.Response) (model.TodoItem, error) {
	var out todoResponse
	if err := resp.Decode(&out); err != nil {
		return model.TodoItem{}, err
	}
	if err := checkSuccess(out.Success, out.Message); err != nil {
		return model.TodoItem{}, err
	}
	if out.Todo == nil {
		return model.TodoItem{}, fmt.Errorf("%w: response has no todo", ErrRejected)
	}
	if out.Todo.ID == "" {
		return model.TodoItem{}, fmt.Errorf("%w: todo has no id", ErrRejected)
	}
	return *out.Todo, nil
}

// checkSuccess treats a missing success flag the same as false.
func checkSuccess(success *bool, message string) error {
	if success != nil && *success {
		return nil
	}
	if message != "" {
		return fmt.Errorf("%w: %s", ErrRejected, message)
	}
	return ErrRejected
}
