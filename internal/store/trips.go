package store

import (
	"database/sql"
	"fmt"
)

// Trip represents a top-level planned journey
type Trip struct {
	ID          int64
	Title       string
	Destination string
	StartDate   string // ISO date (YYYY-MM-DD)
	EndDate     string
	Budget      float64
	Notes       string
	ImageURI    string
	CreatedAt   string
}

// TripUpdate holds a partial trip payload for UpdateTrip. A nil field keeps
// the currently stored value.
type TripUpdate struct {
	Title       *string
	Destination *string
	StartDate   *string
	EndDate     *string
	Budget      *float64
	Notes       *string
	ImageURI    *string
}

// InsertTrip inserts a new trip and sets t.ID to the generated id.
// Optional text fields left empty are stored as NULL; the budget is stored
// as given, including 0.
func (s *Store) InsertTrip(t *Trip) error {
	result, err := s.db.Exec(`
		INSERT INTO trips (title, destination, start_date, end_date, budget, notes, image_uri)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.Title, nullIfEmpty(t.Destination), nullIfEmpty(t.StartDate), nullIfEmpty(t.EndDate),
		t.Budget, nullIfEmpty(t.Notes), nullIfEmpty(t.ImageURI))

	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get trip ID: %w", err)
	}
	t.ID = id

	return nil
}

// GetTrips retrieves all trips, most recently created first
func (s *Store) GetTrips() ([]*Trip, error) {
	rows, err := s.db.Query(`
		SELECT id, title, COALESCE(destination, ''), COALESCE(start_date, ''),
		       COALESCE(end_date, ''), COALESCE(budget, 0), COALESCE(notes, ''),
		       COALESCE(image_uri, ''), created_at
		FROM trips
		ORDER BY created_at DESC
	`)

	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t := &Trip{}
		err := rows.Scan(
			&t.ID, &t.Title, &t.Destination, &t.StartDate,
			&t.EndDate, &t.Budget, &t.Notes,
			&t.ImageURI, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, rows.Err()
}

// GetTripByID retrieves a trip by id. Returns (nil, nil) if no trip exists
// with that id.
func (s *Store) GetTripByID(id int64) (*Trip, error) {
	t := &Trip{}
	err := s.db.QueryRow(`
		SELECT id, title, COALESCE(destination, ''), COALESCE(start_date, ''),
		       COALESCE(end_date, ''), COALESCE(budget, 0), COALESCE(notes, ''),
		       COALESCE(image_uri, ''), created_at
		FROM trips WHERE id = ?
	`, id).Scan(
		&t.ID, &t.Title, &t.Destination, &t.StartDate,
		&t.EndDate, &t.Budget, &t.Notes,
		&t.ImageURI, &t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return t, nil
}

// UpdateTrip applies a partial update to a trip: the current row is fetched,
// absent fields fall back to the stored values, and one full-row rewrite is
// issued. Returns false if the trip does not exist.
func (s *Store) UpdateTrip(id int64, u *TripUpdate) (bool, error) {
	current, err := s.GetTripByID(id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	merged := *current
	if u.Title != nil {
		merged.Title = *u.Title
	}
	if u.Destination != nil {
		merged.Destination = *u.Destination
	}
	if u.StartDate != nil {
		merged.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		merged.EndDate = *u.EndDate
	}
	if u.Budget != nil {
		merged.Budget = *u.Budget
	}
	if u.Notes != nil {
		merged.Notes = *u.Notes
	}
	if u.ImageURI != nil {
		merged.ImageURI = *u.ImageURI
	}

	_, err = s.db.Exec(`
		UPDATE trips SET
			title = ?,
			destination = ?,
			start_date = ?,
			end_date = ?,
			budget = ?,
			notes = ?,
			image_uri = ?
		WHERE id = ?
	`, merged.Title, nullIfEmpty(merged.Destination), nullIfEmpty(merged.StartDate),
		nullIfEmpty(merged.EndDate), merged.Budget, nullIfEmpty(merged.Notes),
		nullIfEmpty(merged.ImageURI), id)

	if err != nil {
		return false, fmt.Errorf("failed to update trip: %w", err)
	}

	return true, nil
}

// DeleteTrip deletes a trip by id. Steps, checklists (and their items) and
// journal entries (and their media) referencing the trip are removed by the
// schema's cascade rules. Deleting an id that does not exist is a no-op
// success.
func (s *Store) DeleteTrip(id int64) error {
	_, err := s.db.Exec("DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	return nil
}
