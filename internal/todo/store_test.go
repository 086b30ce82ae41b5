package todo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
)

func TestStoreNotifiesSubscribers(t *testing.T) {
	s := NewStore(InitialState(), nil)

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	require.True(t, s.Dispatch(AddTodo{Todo: model.TodoItem{ID: "a"}}))
	require.Len(t, seen, 1)
	assert.Len(t, seen[0].Todos, 1)

	// No change, no notification.
	s.Dispatch(DeleteTodo{ID: "missing"})
	assert.Len(t, seen, 1)

	unsubscribe()
	s.Dispatch(AddTodo{Todo: model.TodoItem{ID: "b"}})
	assert.Len(t, seen, 1)
	assert.Len(t, s.State().Todos, 2)
}

func TestClosedStoreDropsActions(t *testing.T) {
	s := NewStore(InitialState(), nil)
	calls := 0
	s.Subscribe(func(State) { calls++ })

	s.Close()
	assert.False(t, s.Dispatch(AddTodo{Todo: model.TodoItem{ID: "a"}}))
	assert.Empty(t, s.State().Todos)
	assert.Zero(t, calls)
}

func TestNewStoreFillsDefaults(t *testing.T) {
	s := NewStore(State{}, nil).State()
	assert.NotNil(t, s.Todos)
	assert.Equal(t, model.ListTasks, s.ActiveListID)
	assert.Equal(t, model.FilterAll, s.Filter)
}

func TestConcurrentDispatch(t *testing.T) {
	s := NewStore(InitialState(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Dispatch(AddTodo{Todo: model.TodoItem{ID: string(rune('A' + i))}})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.State().Todos, 50)
}
