package spatial

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/quakemap/quake-backend-go/internal/models"
)

const degree = math.Pi / 180

// Rect converts a viewport into an s2 lat/lng rectangle. An inverted
// longitude pair (MinLon > MaxLon) produces an inverted s1.Interval, which
// s2 treats as the box wrapping across the antimeridian.
func Rect(v models.Viewport) s2.Rect {
	lat := r1.Interval{Lo: v.MinLat * degree, Hi: v.MaxLat * degree}
	lng := s1.IntervalFromEndpoints(v.MinLon*degree, v.MaxLon*degree)
	if v.MinLon <= -180 && v.MaxLon >= 180 {
		lng = s1.FullInterval()
	}
	return s2.Rect{Lat: lat, Lng: lng}
}

// Contains reports whether the viewport contains the coordinate, endpoints
// inclusive on both axes.
func Contains(v models.Viewport, lat, lon float64) bool {
	return ContainsRect(Rect(v), lat, lon)
}

// ContainsRect is Contains against a prebuilt rectangle, for callers that
// test many coordinates against one viewport.
func ContainsRect(r s2.Rect, lat, lon float64) bool {
	return r.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}
