// Package store holds the application state container.
//
// A Store owns one model.State at a time. Dispatch is the only way to
// change it; callers construct a Store and pass it to whoever needs it.
package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/signal"
)

// Listener receives the state produced by a dispatch that changed it.
type Listener func(model.State)

type subscription struct {
	id int
	fn Listener
}

// delivery is one committed snapshot and the listeners registered at commit.
type delivery struct {
	state model.State
	subs  []subscription
}

// Store is the single writer of application state.
type Store struct {
	mu       sync.Mutex
	state    model.State
	subs     []subscription
	nextID   int
	pending  []delivery
	draining bool
	log      *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger logs every dispatch at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a store holding initial.
func New(initial model.State, opts ...Option) *Store {
	s := &Store{state: initial, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetState returns a copy of the current state.
func (s *Store) GetState() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies sig to every slot and replaces the state in one step.
// Listeners run after the lock is released, only when the state changed,
// each with the snapshot this dispatch produced. A listener may dispatch.
//
// Snapshots reach listeners in commit order. If another goroutine is
// already delivering, this dispatch queues its snapshot for that goroutine
// and may return before its listeners have run.
func (s *Store) Dispatch(sig signal.Signal) model.State {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, sig)
	s.state = next
	if next != prev && len(s.subs) > 0 {
		subs := make([]subscription, len(s.subs))
		copy(subs, s.subs)
		s.pending = append(s.pending, delivery{state: next, subs: subs})
	}
	drain := len(s.pending) > 0 && !s.draining
	if drain {
		s.draining = true
	}
	s.mu.Unlock()

	s.log.Debug("dispatch",
		zap.String("type", sig.Type()),
		zap.Int("counter", next.Counter),
		zap.Bool("isLogged", next.IsLogged),
		zap.String("weather", string(next.Weather.Status)),
		zap.Bool("changed", next != prev),
	)

	if drain {
		s.drain()
	}
	return next
}

// drain delivers queued snapshots until the queue is empty. Only one
// goroutine drains at a time.
func (s *Store) drain() {
	done := false
	defer func() {
		// a panicking listener must not leave the queue owned by nobody
		if !done {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
		}
	}()
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			done = true
			return
		}
		d := s.pending[0]
		s.pending[0] = delivery{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, sub := range d.subs {
			sub.fn(d.state)
		}
	}
}

// Subscribe registers fn and returns a func that removes it.
// Calling the returned func more than once is harmless.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}
