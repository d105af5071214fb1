package store

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Dispatcher accepts actions.
type Dispatcher interface {
	Dispatch(Action)
}

// StateReader exposes the current snapshot. *Store implements it, so effects
// can inspect the state through the Dispatcher they are handed.
type StateReader interface {
	State() *State
}

// Effect reacts to dispatched actions, typically by performing asynchronous
// work and dispatching an outcome action through d.
type Effect interface {
	Handle(a Action, d Dispatcher)
}

// EffectFunc adapts a function to Effect.
type EffectFunc func(a Action, d Dispatcher)

// Handle calls f(a, d).
func (f EffectFunc) Handle(a Action, d Dispatcher) {
	f(a, d)
}

// Listener is notified after each state replacement with the new state and
// the action that produced it.
type Listener func(s *State, a Action)

// Store owns the current State. Dispatch is the only way to change it.
type Store struct {
	mu        sync.Mutex
	state     *State
	reduce    Reducer
	effects   []Effect
	listeners map[int]Listener
	nextID    int
	logger    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithEffects registers effects, run in order after every dispatch.
func WithEffects(effects ...Effect) Option {
	return func(s *Store) {
		s.effects = append(s.effects, effects...)
	}
}

// WithReducer replaces the default Reduce.
func WithReducer(r Reducer) Option {
	return func(s *Store) {
		s.reduce = r
	}
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a store holding initial.
func New(initial *State, opts ...Option) *Store {
	if initial == nil {
		initial = NewState(nil)
	}

	s := &Store{
		state:     initial,
		reduce:    Reduce,
		listeners: make(map[int]Listener),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the current state, notifies listeners if the state
// was replaced, then hands a to every effect.
//
// Dispatch is safe for concurrent use. Reduction and notification happen
// under one lock, so listeners see replacements in the order the actions were
// applied. Listeners must not call Dispatch themselves; effects may.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()

	prev := s.state
	next := s.reduce(prev, a)
	s.state = next

	s.logger.Debug("action dispatched",
		zap.String("type", string(a.Type())),
		zap.Bool("replaced", next != prev),
		zap.Int("webpages", len(next.Webpages)),
		zap.Bool("loading", next.IsLoading),
	)

	if next != prev {
		for _, l := range s.sortedListeners() {
			l(next, a)
		}
	}

	effects := s.effects
	s.mu.Unlock()

	for _, e := range effects {
		e.Handle(a, s)
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// sortedListeners returns listeners in subscription order. Caller holds s.mu.
func (s *Store) sortedListeners() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}
