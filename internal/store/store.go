// Package store owns the task collection.
//
// A Store is created once per process from a Persister and is the only
// thing that mutates the collection or writes it back. Every change is
// written through before the operation returns, then published to
// subscribers. A Store is single-writer: callers that share one across
// goroutines must serialize access themselves.
package store

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todo/internal/logging"
	"todo/internal/persist"
	"todo/internal/task"
)

// ErrNoStore is the panic value when a consumer is wired without a store.
var ErrNoStore = errors.New("task store not initialized")

// Persister loads and saves whole collections.
type Persister interface {
	Load() persist.LoadResult
	Save(tasks []task.Task) error
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces time.Now for CreatedAt.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store holds the authoritative task collection.
type Store struct {
	p      Persister
	tasks  []task.Task
	loaded persist.LoadResult

	subs   map[int]func([]task.Task)
	nextID int

	newID  func() string
	now    func() time.Time
	logger *slog.Logger
}

// New creates a Store and loads its initial collection from p.
// It panics with ErrNoStore if p is nil.
func New(p Persister, opts ...Option) *Store {
	if p == nil {
		panic(ErrNoStore)
	}
	s := &Store{
		p:      p,
		subs:   make(map[int]func([]task.Task)),
		newID:  uuid.NewString,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.loaded = p.Load()
	s.tasks = task.Clone(s.loaded.Tasks)
	s.logger.Debug("task store ready",
		slog.String("load", s.loaded.Status.String()),
		slog.Int("count", len(s.tasks)))
	return s
}

// Must returns s, panicking with ErrNoStore if it is nil.
func Must(s *Store) *Store {
	if s == nil {
		panic(ErrNoStore)
	}
	return s
}

// LoadResult returns the outcome of the initial load. Its Tasks field
// reflects startup, not the current collection.
func (s *Store) LoadResult() persist.LoadResult {
	return s.loaded
}

// Collection returns a copy of the current collection, newest first.
func (s *Store) Collection() []task.Task {
	return task.Clone(s.tasks)
}

// Filtered returns the view of the current collection selected by f.
// It is computed on every call.
func (s *Store) Filtered(f task.Filter) []task.Task {
	return task.Apply(s.tasks, f)
}

// View returns the current collection filtered by the selector's filter.
func (s *Store) View(sel task.Selector) []task.Task {
	return task.View(s.tasks, sel)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (task.Task, bool) {
	i := task.IndexOf(s.tasks, id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Add prepends a new, uncompleted task with the given text. Any text,
// including the empty string, is accepted.
//
// The returned task is in the collection even when err is a
// *persist.SaveError.
func (s *Store) Add(text string) (task.Task, error) {
	t := task.Task{
		ID:        s.uniqueID(),
		Text:      text,
		Completed: false,
		// UTC without a monotonic reading, so a reload yields an identical value.
		CreatedAt: s.now().UTC().Round(0),
	}

	next := make([]task.Task, 0, len(s.tasks)+1)
	next = append(next, t)
	next = append(next, s.tasks...)
	return t, s.commit(next)
}

// Toggle flips Completed on the task with the given id. It reports whether
// the task was found; an unknown id changes nothing.
func (s *Store) Toggle(id string) (bool, error) {
	i := task.IndexOf(s.tasks, id)
	if i < 0 {
		return false, nil
	}
	next := task.Clone(s.tasks)
	next[i].Completed = !next[i].Completed
	return true, s.commit(next)
}

// Delete removes the task with the given id, completed or not. It reports
// whether the task was found; an unknown id changes nothing.
func (s *Store) Delete(id string) (bool, error) {
	i := task.IndexOf(s.tasks, id)
	if i < 0 {
		return false, nil
	}
	next := make([]task.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	return true, s.commit(next)
}

// Subscribe registers fn to receive the collection after every change.
// The returned function unregisters it.
func (s *Store) Subscribe(fn func([]task.Task)) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// commit writes next through to the persister, installs it, and publishes
// it. The in-memory collection is replaced even if the write fails.
func (s *Store) commit(next []task.Task) error {
	err := s.p.Save(next)
	if err != nil {
		s.logger.Debug("task change not persisted", slog.String("error", err.Error()))
	}
	s.tasks = next
	s.publish()
	return err
}

func (s *Store) publish() {
	for _, fn := range s.subs {
		fn(task.Clone(s.tasks))
	}
}

// uniqueID draws ids until one is not in use. With uuids the loop runs
// once; it matters only for injected generators.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if task.IndexOf(s.tasks, id) < 0 {
			return id
		}
	}
}
