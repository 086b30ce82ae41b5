package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dayboard/internal/model"
)

// opTimeout bounds a single todo operation started from the board.
const opTimeout = 30 * time.Second

// opResultMsg is sent when a todo operation finishes. The store change,
// if any, arrives separately as a stateChangedMsg.
type opResultMsg struct {
	verb string
	err  error
}

type opFunc func(ctx context.Context) error

// run starts op in the background and reports its outcome as an
// opResultMsg.
func (m Model) run(verb string, op opFunc) (tea.Model, tea.Cmd) {
	m.pending++
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return opResultMsg{verb: verb, err: op(ctx)}
	}
}

// createTodo creates a todo. Created from a smart list, the todo gets the
// attribute that makes it show up there.
func (m Model) createTodo(patch model.TodoPatch) opFunc {
	ops := m.ops
	switch m.state.ActiveListID {
	case model.ListImportant:
		if patch.Important == nil {
			patch.Important = model.Ptr(true)
		}
	case model.ListMyDay, model.ListPlanned:
		if patch.DueDate == nil {
			now := m.now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			patch.DueDate = &today
		}
	}
	return func(ctx context.Context) error {
		_, err := ops.CreateTodo(ctx, patch)
		return err
	}
}

func (m Model) updateTodo(id string, patch model.TodoPatch) opFunc {
	ops := m.ops
	return func(ctx context.Context) error {
		_, err := ops.UpdateTodo(ctx, id, patch)
		return err
	}
}

func (m Model) deleteTodo(id string) opFunc {
	ops := m.ops
	return func(ctx context.Context) error {
		return ops.DeleteTodo(ctx, id)
	}
}

func (m Model) toggleComplete(id string) opFunc {
	ops := m.ops
	return func(ctx context.Context) error {
		_, err := ops.ToggleTodoComplete(ctx, id)
		return err
	}
}

func (m Model) toggleImportant(id string) opFunc {
	ops := m.ops
	current, ok := m.store.Todo(id)
	return func(ctx context.Context) error {
		if !ok {
			return nil
		}
		_, err := ops.UpdateTodo(ctx, id, model.TodoPatch{Important: model.Ptr(!current.Important)})
		return err
	}
}

func (m Model) refresh() opFunc {
	ops := m.ops
	return ops.Refresh
}
