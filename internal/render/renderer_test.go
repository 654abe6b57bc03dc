package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quakemap/quake-backend-go/internal/models"
)

func resultOf(events ...models.Event) *models.ResultSet {
	return &models.ResultSet{Events: events, TotalMatched: len(events)}
}

func TestComposeConsistency(t *testing.T) {
	rs := resultOf(
		models.Event{ID: "c", OccurredAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Magnitude: 4.8, Place: "south of Fiji"},
		models.Event{ID: "b", OccurredAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Magnitude: 5.1, Place: "near Honshu"},
		models.Event{ID: "a", OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Magnitude: 4.2},
	)

	v := Compose(rs)

	// Equal cardinality and identical ID sets: the map and the table can
	// never disagree about which quakes exist.
	assert.Len(t, v.Markers, len(v.Rows))
	markerIDs := make([]string, len(v.Markers))
	for i, m := range v.Markers {
		markerIDs[i] = m.ID
	}
	rowIDs := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		rowIDs[i] = r.ID
	}
	assert.ElementsMatch(t, markerIDs, rowIDs)

	// Rows preserve the executor's order.
	assert.Equal(t, []string{"c", "b", "a"}, rowIDs)
}

func TestComposeCarriesTruncation(t *testing.T) {
	rs := resultOf(models.Event{ID: "a", Magnitude: 5})
	rs.Truncated = true
	rs.TotalMatched = 120

	v := Compose(rs)

	assert.True(t, v.Truncated)
	assert.Equal(t, 120, v.TotalMatched)
	assert.Equal(t, 1, v.Shown())
}

func TestComposeEmpty(t *testing.T) {
	v := Compose(resultOf())

	assert.NotNil(t, v.Markers)
	assert.NotNil(t, v.Rows)
	assert.Zero(t, v.Shown())
}

func TestShortLabel(t *testing.T) {
	withPlace := models.Event{Magnitude: 5.13, Place: "80km SW of Tokyo"}
	withoutPlace := models.Event{Magnitude: 4.0}

	assert.Equal(t, "M5.1 - 80km SW of Tokyo", ShortLabel(&withPlace))
	assert.Equal(t, "M4.0", ShortLabel(&withoutPlace))
}

func TestDepthColors(t *testing.T) {
	shallowStroke, _ := DepthColors(10)
	intermediateStroke, _ := DepthColors(150)
	deepStroke, _ := DepthColors(600)

	assert.Equal(t, "#dc2626", shallowStroke)
	assert.Equal(t, "#ea580c", intermediateStroke)
	assert.Equal(t, "#2563eb", deepStroke)
}

func TestMagRadius(t *testing.T) {
	assert.Equal(t, 4, MagRadius(0.5), "small quakes stay clickable")
	assert.Equal(t, 15, MagRadius(5.0))
	assert.Equal(t, 27, MagRadius(9.1))
}

func TestFormatTimeRelative(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "3d ago", FormatTimeRelative(now.Add(-3*24*time.Hour)))
	assert.Equal(t, "2h ago", FormatTimeRelative(now.Add(-2*time.Hour)))
	assert.Equal(t, "5m ago", FormatTimeRelative(now.Add(-5*time.Minute)))
	assert.Equal(t, "2y ago", FormatTimeRelative(now.Add(-2*366*24*time.Hour)))
}
