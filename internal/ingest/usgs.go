package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/quakemap/quake-backend-go/internal/models"
)

// DefaultBaseURL is the USGS fdsnws event service.
const DefaultBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"

// queryLimit is the USGS per-query event cap; callers window their requests
// to stay under it.
const queryLimit = 20000

// Client fetches earthquake events from the USGS event service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a USGS client against the given base URL (empty means
// the production service).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// FetchWindow fetches all events of at least minMag within [start, end).
// The window must be small enough to stay under the service's 20k cap;
// one year of M4+ activity fits comfortably.
func (c *Client) FetchWindow(ctx context.Context, start, end time.Time, minMag float64) ([]models.Event, error) {
	params := url.Values{}
	params.Set("format", "geojson")
	params.Set("starttime", start.Format(time.DateOnly))
	params.Set("endtime", end.Format(time.DateOnly))
	params.Set("minmagnitude", fmt.Sprintf("%g", minMag))
	params.Set("orderby", "time")
	params.Set("limit", fmt.Sprintf("%d", queryLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build USGS request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query USGS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("USGS returned status %d", resp.StatusCode)
	}

	var payload featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode USGS response: %w", err)
	}

	events := make([]models.Event, 0, len(payload.Features))
	for _, f := range payload.Features {
		e, ok := f.toEvent()
		if !ok {
			continue
		}
		events = append(events, e)
	}

	return events, nil
}

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string `json:"id"`
	Properties struct {
		Mag     *float64 `json:"mag"`
		Place   string   `json:"place"`
		Time    *int64   `json:"time"` // epoch milliseconds
		MagType string   `json:"magType"`
		Status  string   `json:"status"`
		Tsunami int      `json:"tsunami"`
		Sig     int      `json:"sig"`
		Felt    *int     `json:"felt"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lng, lat, depth]
	} `json:"geometry"`
}

// toEvent converts a GeoJSON feature, dropping records without an ID,
// timestamp or coordinates.
func (f feature) toEvent() (models.Event, bool) {
	if f.ID == "" || f.Properties.Time == nil || len(f.Geometry.Coordinates) < 2 {
		return models.Event{}, false
	}

	e := models.Event{
		ID:         f.ID,
		OccurredAt: time.UnixMilli(*f.Properties.Time).UTC(),
		Longitude:  f.Geometry.Coordinates[0],
		Latitude:   f.Geometry.Coordinates[1],
		MagType:    f.Properties.MagType,
		Place:      f.Properties.Place,
		Status:     f.Properties.Status,
		Tsunami:    f.Properties.Tsunami,
		Sig:        f.Properties.Sig,
	}
	if len(f.Geometry.Coordinates) > 2 {
		e.DepthKm = f.Geometry.Coordinates[2]
	}
	if f.Properties.Mag != nil {
		e.Magnitude = *f.Properties.Mag
	}
	if f.Properties.Felt != nil {
		e.Felt = *f.Properties.Felt
	}

	return e, true
}
