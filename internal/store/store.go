package store

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/quakemap/quake-backend-go/internal/models"
)

// Loader supplies the full dataset, typically the SQLite-backed event
// repository.
type Loader interface {
	LoadEvents() ([]models.Event, error)
}

// Store holds the full earthquake dataset in memory. It is populated once at
// startup and never mutated afterwards, so concurrent queries read it
// without locking. Until Load completes, Ready reports false and queries
// must be refused as retryable.
type Store struct {
	events []models.Event
	extent models.DateRange
	ready  atomic.Bool
}

// New returns an empty, not-yet-ready store.
func New() *Store {
	return &Store{}
}

// Load pulls the dataset from the loader and flips the store ready. It is
// meant to be called exactly once at startup.
func (s *Store) Load(l Loader) error {
	events, err := l.LoadEvents()
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}

	s.events = events
	for i := range events {
		t := events[i].OccurredAt
		if i == 0 || t.Before(s.extent.Min) {
			s.extent.Min = t
		}
		if i == 0 || t.After(s.extent.Max) {
			s.extent.Max = t
		}
	}
	s.ready.Store(true)

	log.Printf("Event store loaded: %d events (%s – %s)",
		len(events),
		s.extent.Min.Format(time.DateOnly),
		s.extent.Max.Format(time.DateOnly))
	return nil
}

// Ready reports whether startup ingestion has completed.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// Events returns the backing dataset. Callers must treat it as read-only;
// its order is incidental load order and carries no meaning.
func (s *Store) Events() []models.Event {
	return s.events
}

// Len returns the number of loaded events.
func (s *Store) Len() int {
	return len(s.events)
}

// Extent returns the temporal extent of the dataset, used to bound the
// time-range control.
func (s *Store) Extent() models.DateRange {
	return s.extent
}
