package models

import "time"

// Viewport is a geographic bounding box. MinLon > MaxLon signals a box that
// wraps across the antimeridian and must be treated as two disjoint
// longitude ranges.
type Viewport struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// World is the full-extent viewport used when the map has not reported
// bounds yet.
func World() Viewport {
	return Viewport{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}
}

// TimeRange is an inclusive [Start, End] window.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Clamp raises End to Start when the pair arrives inverted. Inverted ranges
// are repaired rather than rejected.
func (tr TimeRange) Clamp() TimeRange {
	if tr.End.Before(tr.Start) {
		tr.End = tr.Start
	}
	return tr
}

// Contains reports whether t falls inside the window, both ends inclusive.
func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && !t.After(tr.End)
}

// Filter is one interaction's worth of query state: viewport, time window
// and magnitude floor. All three dimensions always apply; an unbounded
// dimension is expressed by supplying the full extent.
type Filter struct {
	Viewport     Viewport
	TimeRange    TimeRange
	MinMagnitude float64
}
