package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/logging"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/todo"
)

// snapshotTimeout bounds a single mirror write.
const snapshotTimeout = 5 * time.Second

// todoSnapshot is the persisted part of the todo state. Selection is UI
// state and stays in memory.
type todoSnapshot struct {
	Todos        []model.TodoItem `json:"todos"`
	Lists        []model.TodoList `json:"lists"`
	ActiveListID string           `json:"activeListId"`
	Filter       model.TodoFilter `json:"filter"`
}

// SaveTodoState writes the persisted part of st.
func (s *SQLiteStore) SaveTodoState(ctx context.Context, st todo.State) error {
	return s.Put(ctx, KeyTodoState, todoSnapshot{
		Todos:        st.Todos,
		Lists:        st.Lists,
		ActiveListID: st.ActiveListID,
		Filter:       st.Filter,
	})
}

// LoadTodoState returns the last saved todo state, or the initial state
// and false when nothing was saved.
func (s *SQLiteStore) LoadTodoState(ctx context.Context) (todo.State, bool, error) {
	var snap todoSnapshot
	found, err := s.Get(ctx, KeyTodoState, &snap)
	if err != nil || !found {
		return todo.InitialState(), false, err
	}

	st := todo.InitialState()
	st = todo.Reduce(st, todo.Hydrate{
		Todos:        snap.Todos,
		Lists:        snap.Lists,
		ActiveListID: snap.ActiveListID,
		Filter:       snap.Filter,
	})
	return st, true, nil
}

// MirrorTodoState saves every state change of ts until the returned
// function is called. Write failures are logged, not returned: the
// in-memory store stays authoritative for the running session.
func (s *SQLiteStore) MirrorTodoState(ts *todo.Store, logger *zap.Logger) (stop func()) {
	logger = logging.OrNop(logger)
	return ts.Subscribe(func(st todo.State) {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		if err := s.SaveTodoState(ctx, st); err != nil {
			logger.Error("saving todo snapshot", zap.Error(err))
		}
	})
}
