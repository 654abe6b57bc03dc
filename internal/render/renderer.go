package render

import (
	"fmt"

	"github.com/quakemap/quake-backend-go/internal/models"
)

// Marker is one map marker descriptor. Markers are position-addressed and
// independent of each other; their order carries no meaning.
type Marker struct {
	ID         string
	Lat        float64
	Lon        float64
	Magnitude  float64
	DepthKm    float64
	ShortLabel string
	Radius     int
	Stroke     string
	Fill       string
}

// Row is one table row descriptor. Row order is the result order and is
// meaningful to the user.
type Row struct {
	ID           string
	Magnitude    float64
	Place        string
	DepthKm      float64
	Lat          float64
	Lon          float64
	When         string
	WhenRelative string
}

// Views carries both projections of one result set. Markers and Rows are
// always derived from the same ResultSet within one call to Compose, so the
// map and the table can never disagree.
type Views struct {
	Markers      []Marker
	Rows         []Row
	Stats        models.Stats
	Truncated    bool
	TotalMatched int
}

// Compose projects a result set into its marker and row views. Both views
// have one entry per event, in the executor's order for rows.
func Compose(rs *models.ResultSet) *Views {
	v := &Views{
		Markers:      make([]Marker, 0, len(rs.Events)),
		Rows:         make([]Row, 0, len(rs.Events)),
		Stats:        rs.Stats,
		Truncated:    rs.Truncated,
		TotalMatched: rs.TotalMatched,
	}

	for i := range rs.Events {
		e := &rs.Events[i]
		stroke, fill := DepthColors(e.DepthKm)
		v.Markers = append(v.Markers, Marker{
			ID:         e.ID,
			Lat:        e.Latitude,
			Lon:        e.Longitude,
			Magnitude:  e.Magnitude,
			DepthKm:    e.DepthKm,
			ShortLabel: ShortLabel(e),
			Radius:     MagRadius(e.Magnitude),
			Stroke:     stroke,
			Fill:       fill,
		})
		v.Rows = append(v.Rows, Row{
			ID:           e.ID,
			Magnitude:    e.Magnitude,
			Place:        e.Place,
			DepthKm:      e.DepthKm,
			Lat:          e.Latitude,
			Lon:          e.Longitude,
			When:         FormatTime(e.OccurredAt),
			WhenRelative: FormatTimeRelative(e.OccurredAt),
		})
	}

	return v
}

// Shown returns the number of rendered events.
func (v *Views) Shown() int {
	return len(v.Rows)
}

// ShortLabel builds the marker popup label, e.g. "M5.1 - 80km SW of Tokyo".
func ShortLabel(e *models.Event) string {
	if e.Place == "" {
		return fmt.Sprintf("M%.1f", e.Magnitude)
	}
	return fmt.Sprintf("M%.1f - %s", e.Magnitude, e.Place)
}
