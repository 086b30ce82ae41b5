package todo

import "github.com/nhle/dayboard/internal/model"

// ActionType names an action. The set is closed: only the types below
// are understood by Reduce.
type ActionType string

const (
	ActionAddTodo       ActionType = "ADD_TODO"
	ActionUpdateTodo    ActionType = "UPDATE_TODO"
	ActionDeleteTodo    ActionType = "DELETE_TODO"
	ActionAddList       ActionType = "ADD_LIST"
	ActionUpdateList    ActionType = "UPDATE_LIST"
	ActionDeleteList    ActionType = "DELETE_LIST"
	ActionSetActiveList ActionType = "SET_ACTIVE_LIST"
	ActionSetFilter     ActionType = "SET_FILTER"
	ActionSelectTodo    ActionType = "SELECT_TODO"
	ActionHydrate       ActionType = "HYDRATE"
)

// Action is a state change request. The unexported method keeps the set
// closed to this package.
type Action interface {
	Type() ActionType
	action()
}

type AddTodo struct{ Todo model.TodoItem }

type UpdateTodo struct{ Todo model.TodoItem }

type DeleteTodo struct{ ID string }

type AddList struct{ List model.TodoList }

type UpdateList struct{ List model.TodoList }

type DeleteList struct{ ID string }

type SetActiveList struct{ ID string }

type SetFilter struct{ Filter model.TodoFilter }

// SelectTodo marks a todo as the focused one. An empty ID clears it.
type SelectTodo struct{ ID string }

// Hydrate replaces todos and lists wholesale, e.g. from a snapshot or a
// server listing. Empty ActiveListID and Filter keep the current values.
// With KeepLocalLists, lists absent from Lists are kept instead of dropped.
type Hydrate struct {
	Todos          []model.TodoItem
	Lists          []model.TodoList
	ActiveListID   string
	Filter         model.TodoFilter
	KeepLocalLists bool
}

func (AddTodo) Type() ActionType { return ActionAddTodo }
func (UpdateTodo) Type() ActionType { return ActionUpdateTodo }
func (DeleteTodo) Type() ActionType { return ActionDeleteTodo }
func (AddList) Type() ActionType { return ActionAddList }
func (UpdateList) Type() ActionType { return ActionUpdateList }
func (DeleteList) Type() ActionType { return ActionDeleteList }
func (SetActiveList) Type() ActionType { return ActionSetActiveList }
func (SetFilter) Type() ActionType { return ActionSetFilter }
func (SelectTodo) Type() ActionType { return ActionSelectTodo }
func (Hydrate) Type() ActionType { return ActionHydrate }

func (AddTodo) action() {}
func (UpdateTodo) action() {}
func (DeleteTodo) action() {}
func (AddList) action() {}
func (UpdateList) action() {}
func (DeleteList) action() {}
func (SetActiveList) action() {}
func (SetFilter) action() {}
func (SelectTodo) action() {}
func (Hydrate) action() {}
