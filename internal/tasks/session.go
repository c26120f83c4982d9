package tasks

import (
	"fmt"
	"slices"
	"sync"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// Session holds the current result set of an interactive browse.
//
// Each search calls Begin before fetching and Commit with the generation it was given.
// A commit from a search that has since been superseded is rejected, so a slow response
// can never overwrite the results of a newer one.
type Session struct {
	mu     sync.Mutex
	gen    uint64
	events []models.Event
}

// Begin starts a new generation, invalidating any search still in flight.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Commit stores events for gen, or returns [shared.ErrStaleResponse] when a newer generation has begun.
func (s *Session) Commit(gen uint64, events []models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return fmt.Errorf("%w: generation %d superseded by %d", shared.ErrStaleResponse, gen, s.gen)
	}
	s.events = slices.Clone(events)
	return nil
}

// Generation returns the latest generation handed out by Begin.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Events returns a copy of the committed results.
func (s *Session) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// Find looks up a committed event by id.
func (s *Session) Find(id string) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}
