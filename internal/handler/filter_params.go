package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quakemap/quake-backend-go/internal/models"
	"github.com/quakemap/quake-backend-go/internal/session"
)

// parseFilter reads the filter-change parameters the front end sends:
// bbox (Leaflet order: minLng,minLat,maxLng,maxLat), start/end dates,
// min_mag, and the input kind for debounce classification.
func parseFilter(c *gin.Context) (models.Filter, session.InputKind, error) {
	var f models.Filter

	vp, err := parseBbox(c.DefaultQuery("bbox", "-180,-90,180,90"))
	if err != nil {
		return f, session.Continuous, err
	}
	f.Viewport = vp

	now := time.Now().UTC()
	start, err := parseDate(c.Query("start"), now.Add(-30*24*time.Hour))
	if err != nil {
		return f, session.Continuous, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := parseDateEnd(c.Query("end"), now)
	if err != nil {
		return f, session.Continuous, fmt.Errorf("invalid end date: %w", err)
	}
	f.TimeRange = models.TimeRange{Start: start, End: end}

	magStr := c.DefaultQuery("min_mag", "4.0")
	f.MinMagnitude, err = strconv.ParseFloat(magStr, 64)
	if err != nil {
		return f, session.Continuous, fmt.Errorf("invalid min_mag %q", magStr)
	}

	kind := session.Continuous
	if c.Query("input") == "discrete" {
		kind = session.Discrete
	}

	return f, kind, nil
}

// parseBbox parses the Leaflet bbox string "min_lng,min_lat,max_lng,max_lat".
// A bbox whose min_lng exceeds its max_lng wraps across the antimeridian.
func parseBbox(s string) (models.Viewport, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return models.Viewport{}, fmt.Errorf("invalid bbox %q: want 4 comma-separated numbers", s)
	}

	nums := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return models.Viewport{}, fmt.Errorf("invalid bbox %q: %q is not a number", s, p)
		}
		nums[i] = v
	}

	return models.Viewport{
		MinLon: clampLon(nums[0]),
		MinLat: clampLat(nums[1]),
		MaxLon: clampLon(nums[2]),
		MaxLat: clampLat(nums[3]),
	}, nil
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither YYYY-MM-DD nor RFC3339", s)
	}
	return t.UTC(), nil
}

// parseDateEnd is parseDate with date-only values widened to the end of the
// day, so the end date is inclusive.
func parseDateEnd(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Add(24*time.Hour - time.Second), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither YYYY-MM-DD nor RFC3339", s)
	}
	return t.UTC(), nil
}

// Leaflet can report bounds past the world edge when the map is zoomed far
// out; clamp rather than reject.
func clampLat(v float64) float64 {
	if v < -90 {
		return -90
	}
	if v > 90 {
		return 90
	}
	return v
}

func clampLon(v float64) float64 {
	if v < -180 {
		return -180
	}
	if v > 180 {
		return 180
	}
	return v
}
