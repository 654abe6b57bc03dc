package models

import "time"

// Event represents a single earthquake record. Events are immutable after
// ingestion; every field except the display-only ones participates in
// filtering or ordering.
type Event struct {
	ID         string    `json:"id" db:"id"`                 // USGS event ID, e.g. "us7000kufc"
	OccurredAt time.Time `json:"occurredAt" db:"time"`       // UTC
	Latitude   float64   `json:"latitude" db:"lat"`          // -90..90
	Longitude  float64   `json:"longitude" db:"lng"`         // -180..180
	DepthKm    float64   `json:"depthKm" db:"depth"`
	Magnitude  float64   `json:"magnitude" db:"mag"`
	MagType    string    `json:"magType,omitempty" db:"mag_type"`
	Place      string    `json:"place,omitempty" db:"place"` // display only
	Status     string    `json:"status,omitempty" db:"status"`
	Tsunami    int       `json:"tsunami" db:"tsunami"`
	Sig        int       `json:"sig" db:"sig"`
	Felt       int       `json:"felt" db:"felt"`
}

// DateRange is the temporal extent of the loaded dataset, used to bound the
// time-range control on the page.
type DateRange struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}
