package service

import (
	"fmt"
	"time"

	"github.com/quakemap/quake-backend-go/internal/models"
	"github.com/quakemap/quake-backend-go/internal/query"
	"github.com/quakemap/quake-backend-go/internal/render"
	"github.com/quakemap/quake-backend-go/internal/store"
)

// QuakeService runs the filter pipeline: build a predicate, execute it
// against the store, compose both views from the single result set.
type QuakeService struct {
	store     *store.Store
	resultCap int
}

// NewQuakeService creates a new quake service.
func NewQuakeService(st *store.Store, resultCap int) *QuakeService {
	return &QuakeService{
		store:     st,
		resultCap: resultCap,
	}
}

// Query runs one filter end to end. Both returned views derive from the
// same result set.
func (s *QuakeService) Query(f models.Filter) (*render.Views, error) {
	pred, err := query.Build(f)
	if err != nil {
		return nil, err
	}

	rs, err := query.Execute(s.store, pred, s.resultCap)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return render.Compose(rs), nil
}

// DateRange returns the temporal extent of the dataset.
func (s *QuakeService) DateRange() models.DateRange {
	return s.store.Extent()
}

// Ready reports whether the dataset has finished loading.
func (s *QuakeService) Ready() bool {
	return s.store.Ready()
}

// EventCount returns the number of loaded events.
func (s *QuakeService) EventCount() int {
	return s.store.Len()
}

// DefaultFilter is the page-load filter: last 30 days, M4+, whole world.
func (s *QuakeService) DefaultFilter(now time.Time) models.Filter {
	return models.Filter{
		Viewport: models.World(),
		TimeRange: models.TimeRange{
			Start: now.Add(-30 * 24 * time.Hour),
			End:   now,
		},
		MinMagnitude: 4.0,
	}
}
