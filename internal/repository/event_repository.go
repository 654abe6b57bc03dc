package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/quakemap/quake-backend-go/internal/models"
)

// EventRepository handles database access for the earthquake dataset. The
// server only ever reads from it (one full load at startup); the seeder
// writes it.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ResetSchema drops and recreates the earthquakes table with its indexes.
// The dataset is rebuilt wholesale on every seed run.
func (r *EventRepository) ResetSchema() error {
	stmts := []string{
		`DROP TABLE IF EXISTS earthquakes`,
		`CREATE TABLE earthquakes (
			id TEXT PRIMARY KEY,
			time TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			depth REAL NOT NULL,
			mag REAL NOT NULL,
			mag_type TEXT,
			place TEXT,
			status TEXT,
			tsunami INTEGER DEFAULT 0,
			sig INTEGER,
			felt INTEGER
		)`,
		`CREATE INDEX idx_eq_lat_lng ON earthquakes(lat, lng)`,
		`CREATE INDEX idx_eq_time ON earthquakes(time)`,
		`CREATE INDEX idx_eq_mag ON earthquakes(mag)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to reset schema: %w", err)
		}
	}
	return nil
}

// LoadEvents reads the full dataset. Row order is incidental; consumers
// must not rely on it.
func (r *EventRepository) LoadEvents() ([]models.Event, error) {
	rows, err := r.db.Query(`SELECT id, time, lat, lng, depth, mag, mag_type, place, status, tsunami, sig, felt
		FROM earthquakes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query earthquakes: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate earthquakes: %w", err)
	}

	return events, nil
}

// InsertEvents writes a batch of events inside one transaction. Duplicate
// IDs are ignored so repeated seed windows stay idempotent.
func (r *EventRepository) InsertEvents(events []models.Event) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO earthquakes
		(id, time, lat, lng, depth, mag, mag_type, place, status, tsunami, sig, felt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.Exec(
			e.ID, e.OccurredAt.UTC().Format(time.RFC3339), e.Latitude, e.Longitude,
			e.DepthKm, e.Magnitude, nullString(e.MagType), nullString(e.Place),
			nullString(e.Status), e.Tsunami, e.Sig, e.Felt,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of stored events.
func (r *EventRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM earthquakes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count earthquakes: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanEvent(rows *sql.Rows) (models.Event, error) {
	var (
		e       models.Event
		timeStr string
		magType sql.NullString
		place   sql.NullString
		status  sql.NullString
		tsunami sql.NullInt64
		sig     sql.NullInt64
		felt    sql.NullInt64
	)
	err := rows.Scan(
		&e.ID, &timeStr, &e.Latitude, &e.Longitude, &e.DepthKm, &e.Magnitude,
		&magType, &place, &status, &tsunami, &sig, &felt,
	)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to scan event: %w", err)
	}

	e.OccurredAt, err = parseEventTime(timeStr)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to parse event time %q: %w", timeStr, err)
	}
	e.MagType = magType.String
	e.Place = place.String
	e.Status = status.String
	e.Tsunami = int(tsunami.Int64)
	e.Sig = int(sig.Int64)
	e.Felt = int(felt.Int64)

	return e, nil
}

// parseEventTime accepts RFC3339 with or without sub-second precision,
// which is how USGS timestamps end up serialized.
func parseEventTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
