package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/logging"
	"github.com/nhle/dayboard/internal/model"
)

// ErrInvalidTodo is returned before any network call when a create request
// cannot be valid.
var ErrInvalidTodo = errors.New("invalid todo")

// API is the remote side of the todo operations. Every method returns the
// server's canonical data or an error; a response without success is an
// error too.
type API interface {
	CreateTodo(ctx context.Context, patch model.TodoPatch) (model.TodoItem, error)
	UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (model.TodoItem, error)
	DeleteTodo(ctx context.Context, id string) error
	ListTodos(ctx context.Context) ([]model.TodoItem, []model.TodoList, error)
}

// Operations performs todo mutations against the server and mirrors the
// confirmed result into the store. Nothing is applied locally before the
// server answers, so a failed call leaves the store as it was.
type Operations struct {
	api    API
	store  *Store
	logger *zap.Logger

	// loading is shared by every call on this instance. With overlapping
	// calls the first one to finish clears it.
	loading atomic.Bool
}

// NewOperations wires the remote API to the store.
func NewOperations(api API, store *Store, logger *zap.Logger) *Operations {
	return &Operations{
		api:    api,
		store:  store,
		logger: logging.OrNop(logger),
	}
}

// Loading reports whether a call is in flight.
func (o *Operations) Loading() bool {
	return o.loading.Load()
}

func (o *Operations) begin() func() {
	o.loading.Store(true)
	return func() { o.loading.Store(false) }
}

// CreateTodo creates a todo remotely and adds the server's copy to the
// store. A missing list id defaults to the active list, or to the tasks
// list when a smart list is active.
func (o *Operations) CreateTodo(ctx context.Context, patch model.TodoPatch) (model.TodoItem, error) {
	if patch.Title == nil || strings.TrimSpace(*patch.Title) == "" {
		return model.TodoItem{}, fmt.Errorf("%w: title must not be empty", ErrInvalidTodo)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return model.TodoItem{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidTodo, *patch.Priority)
	}
	if patch.ListID == nil {
		listID := o.store.State().ActiveListID
		if model.IsReservedList(listID) {
			listID = model.ListTasks
		}
		patch.ListID = &listID
	}

	defer o.begin()()

	todo, err := o.api.CreateTodo(ctx, patch)
	if err != nil {
		o.logger.Error("creating todo", zap.Error(err))
		return model.TodoItem{}, fmt.Errorf("creating todo: %w", err)
	}

	o.apply(AddTodo{Todo: todo})
	return todo, nil
}

// UpdateTodo sends the patch and stores the returned todo under the id the
// server returned. The id is not checked against the store first: the
// server is the authority on what exists.
func (o *Operations) UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (model.TodoItem, error) {
	defer o.begin()()

	todo, err := o.api.UpdateTodo(ctx, id, patch)
	if err != nil {
		o.logger.Error("updating todo", zap.String("id", id), zap.Error(err))
		return model.TodoItem{}, fmt.Errorf("updating todo %s: %w", id, err)
	}

	o.apply(UpdateTodo{Todo: todo})
	return todo, nil
}

// DeleteTodo deletes remotely, then removes the todo from the store.
func (o *Operations) DeleteTodo(ctx context.Context, id string) error {
	defer o.begin()()

	if err := o.api.DeleteTodo(ctx, id); err != nil {
		o.logger.Error("deleting todo", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}

	o.apply(DeleteTodo{ID: id})
	return nil
}

// ToggleTodoComplete flips the completed flag of a local todo. Unknown ids
// are a no-op: no request is made and nil is returned.
func (o *Operations) ToggleTodoComplete(ctx context.Context, id string) (*model.TodoItem, error) {
	current, ok := o.store.Todo(id)
	if !ok {
		return nil, nil
	}

	todo, err := o.UpdateTodo(ctx, id, model.TodoPatch{
		Completed: model.Ptr(!current.Completed),
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Refresh replaces the store's todos and lists with the server's listing.
func (o *Operations) Refresh(ctx context.Context) error {
	defer o.begin()()

	todos, lists, err := o.api.ListTodos(ctx)
	if err != nil {
		o.logger.Error("listing todos", zap.Error(err))
		return fmt.Errorf("listing todos: %w", err)
	}

	o.apply(Hydrate{Todos: todos, Lists: lists, KeepLocalLists: true})
	return nil
}

func (o *Operations) apply(a Action) {
	if !o.store.Dispatch(a) {
		o.logger.Warn("store closed, server result not applied",
			zap.String("action", string(a.Type())))
	}
}
