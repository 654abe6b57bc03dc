package models

// Stats summarizes every event matched by a filter, including events cut by
// the result cap, so the UI can report "showing first N of M" plus summary
// figures without a second query.
type Stats struct {
	Count        int     `json:"count"`
	AvgMagnitude float64 `json:"avg_mag"`
	MaxMagnitude float64 `json:"max_mag"`
	AvgDepthKm   float64 `json:"avg_depth"`
}

// ResultSet is the outcome of one query: matching events ordered by
// occurrence time descending (ties broken by ID ascending), capped at the
// executor's limit. It is built fresh per query and discarded after render.
type ResultSet struct {
	Events       []Event
	Truncated    bool
	TotalMatched int
	Stats        Stats
}
