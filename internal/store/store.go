// Package store holds the in-memory section hierarchy of one estimate and
// serializes every mutation through a single read-compute-write primitive.
package store

import (
	"sync"

	"github.com/alexanderramin/tally/internal/domain"
)

// Mutation computes the next hierarchy from the current one. It must not
// retain or mutate its argument beyond the call.
type Mutation func([]domain.Section) ([]domain.Section, error)

// Listener receives a snapshot after every successful replace. Listeners
// run in version order and must not mutate the store.
type Listener func([]domain.Section)

// Store is the authoritative ordered sequence of sections.
type Store struct {
	mu       sync.RWMutex
	sections []domain.Section
	version  uint64

	// nmu orders notifications by version.
	nmu sync.Mutex

	lmu       sync.Mutex
	nextSub   int
	listeners map[int]Listener
}

// New returns a store seeded with a deep copy of sections.
func New(sections []domain.Section) *Store {
	return &Store{
		sections:  domain.CloneSections(sections),
		listeners: make(map[int]Listener),
	}
}

// Sections returns a deep-copied snapshot.
func (s *Store) Sections() []domain.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneSections(s.sections)
}

// Len returns the number of top-level sections.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sections)
}

// Version counts successful replaces since construction.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Replace swaps the whole sequence and notifies subscribers.
func (s *Store) Replace(sections []domain.Section) {
	s.mu.Lock()
	s.sections = domain.CloneSections(sections)
	s.version++
	snap := domain.CloneSections(s.sections)
	s.nmu.Lock()
	s.mu.Unlock()

	s.notify(snap)
	s.nmu.Unlock()
}

// Apply runs fn against the latest snapshot and stores its result. On error
// the store is left untouched and no subscriber fires. The returned slice is
// a copy of the new state.
func (s *Store) Apply(fn Mutation) ([]domain.Section, error) {
	s.mu.Lock()
	next, err := fn(domain.CloneSections(s.sections))
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.sections = domain.CloneSections(next)
	s.version++
	snap := domain.CloneSections(s.sections)
	s.nmu.Lock()
	s.mu.Unlock()

	s.notify(snap)
	s.nmu.Unlock()
	return domain.CloneSections(snap), nil
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

func (s *Store) notify(snap []domain.Section) {
	s.lmu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(domain.CloneSections(snap))
	}
}
