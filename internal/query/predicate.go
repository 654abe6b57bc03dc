package query

import (
	"fmt"
	"math"

	"github.com/quakemap/quake-backend-go/internal/models"
	"github.com/quakemap/quake-backend-go/internal/spatial"
)

// Predicate decides whether a single event matches a filter.
type Predicate func(e *models.Event) bool

// Build validates a filter and composes its three dimensions (viewport,
// time window, magnitude floor) into one predicate. All three always apply;
// an unbounded dimension is expressed by passing the full extent.
//
// The time range is repaired by clamping (end raised to start), never
// rejected. Latitude bounds and the magnitude floor are validated and
// produce ErrInvalidFilter.
func Build(f models.Filter) (Predicate, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	rect := spatial.Rect(f.Viewport)
	tr := f.TimeRange.Clamp()
	minMag := f.MinMagnitude

	return func(e *models.Event) bool {
		if e.Magnitude < minMag {
			return false
		}
		if !tr.Contains(e.OccurredAt) {
			return false
		}
		return spatial.ContainsRect(rect, e.Latitude, e.Longitude)
	}, nil
}

// Validate checks filter bounds without building a predicate. Callers at
// the interaction boundary use it to refuse malformed input before any
// query is issued.
func Validate(f models.Filter) error {
	v := f.Viewport
	if v.MinLat > v.MaxLat {
		return fmt.Errorf("%w: min_lat %.4f > max_lat %.4f", ErrInvalidFilter, v.MinLat, v.MaxLat)
	}
	if v.MinLat < -90 || v.MaxLat > 90 {
		return fmt.Errorf("%w: latitude out of range [-90, 90]", ErrInvalidFilter)
	}
	if math.IsNaN(f.MinMagnitude) || math.IsInf(f.MinMagnitude, 0) {
		return fmt.Errorf("%w: min_magnitude is not finite", ErrInvalidFilter)
	}
	return nil
}
