package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/todo"
	"github.com/nhle/dayboard/internal/ui/command"
)

// execute runs a command palette entry. List commands act on the active
// list and stay local: the server has no list endpoints.
func (m Model) execute(c command.Command) (tea.Model, tea.Cmd) {
	active := m.state.ActiveListID
	m.errMessage = ""

	switch c.Kind {
	case command.AddList:
		l := model.TodoList{ID: uuid.NewString(), Name: c.Name, Color: c.Color}
		m.store.Dispatch(todo.AddList{List: l})
		m.store.Dispatch(todo.SetActiveList{ID: l.ID})

	case command.RenameList:
		l, ok := m.state.List(active)
		if !ok || model.IsReservedList(active) {
			m.errMessage = "Only your own lists can be renamed."
			return m, nil
		}
		l.Name = c.Name
		m.store.Dispatch(todo.UpdateList{List: l})

	case command.DeleteList:
		if model.IsReservedList(active) {
			m.errMessage = "Only your own lists can be deleted."
			return m, nil
		}
		m.store.Dispatch(todo.DeleteList{ID: active})

	case command.GotoList:
		for _, l := range m.allLists() {
			if l.ID == c.Name || strings.EqualFold(l.Name, c.Name) {
				m.store.Dispatch(todo.SetActiveList{ID: l.ID})
				return m, nil
			}
		}
		m.errMessage = fmt.Sprintf("No list named %q.", c.Name)

	case command.SetFilter:
		m.store.Dispatch(todo.SetFilter{Filter: c.Filter})

	case command.Sync:
		return m.sync()

	case command.Quit:
		return m, m.quit()
	}
	return m, nil
}

// sync refreshes from the server, through the poller when there is one.
func (m Model) sync() (tea.Model, tea.Cmd) {
	if m.poller != nil {
		m.poller.Trigger()
		return m, nil
	}
	return m.run("refresh", m.refresh())
}
