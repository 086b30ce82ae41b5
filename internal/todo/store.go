package todo

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/logging"
	"github.com/nhle/dayboard/internal/model"
)

// Listener is called with the new state after every change.
type Listener func(State)

// Store owns the todo state. It is created by the application root and
// passed to whatever needs it; there is no package-level instance.
type Store struct {
	// dispatchMu serializes reduce+notify so listeners observe states in
	// the order they were produced.
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
	closed    bool

	logger *zap.Logger
}

// NewStore creates a store holding initial.
func NewStore(initial State, logger *zap.Logger) *Store {
	if initial.Todos == nil {
		initial.Todos = []model.TodoItem{}
	}
	if initial.ActiveListID == "" {
		initial.ActiveListID = model.ListTasks
	}
	if !initial.Filter.Valid() {
		initial.Filter = model.FilterAll
	}
	return &Store{
		state:     initial,
		listeners: make(map[int]Listener),
		logger:    logging.OrNop(logger),
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Todo looks up a todo in the current state.
func (s *Store) Todo(id string) (model.TodoItem, bool) {
	return s.State().Todo(id)
}

// Dispatch applies an action. It returns false once the store is closed,
// in which case the action is dropped. Listeners run on the calling
// goroutine and must not call Dispatch themselves.
func (s *Store) Dispatch(a Action) bool {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("dropping action on closed store", zap.String("action", string(a.Type())))
		return false
	}
	next, changed := reduce(s.state, a)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	if changed {
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return true
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close detaches all listeners. Later dispatches are ignored, which keeps
// responses that arrive after shutdown from touching torn-down consumers.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = make(map[int]Listener)
}
