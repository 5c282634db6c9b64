package store

import (
	"database/sql"
	"fmt"
)

// Step represents a dated sub-location or activity within a trip's itinerary
type Step struct {
	ID          int64
	TripID      int64
	Name        string
	Location    string
	StartDate   string
	EndDate     string
	Description string
	CreatedAt   string
}

// StepUpdate holds a partial step payload for UpdateStep. A nil field keeps
// the currently stored value. The owning trip cannot be changed.
type StepUpdate struct {
	Name        *string
	Location    *string
	StartDate   *string
	EndDate     *string
	Description *string
}

// InsertStep inserts a new itinerary step and sets st.ID to the generated
// id. The caller supplies a valid TripID obtained from a prior insert or
// listing; the foreign key rejects anything else.
func (s *Store) InsertStep(st *Step) error {
	result, err := s.db.Exec(`
		INSERT INTO trip_steps (trip_id, name, location, start_date, end_date, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, st.TripID, st.Name, nullIfEmpty(st.Location), nullIfEmpty(st.StartDate),
		nullIfEmpty(st.EndDate), nullIfEmpty(st.Description))

	if err != nil {
		return fmt.Errorf("failed to insert step: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get step ID: %w", err)
	}
	st.ID = id

	return nil
}

// GetStepsByTrip retrieves the steps of a trip in itinerary order:
// start date ascending, creation order breaking ties.
func (s *Store) GetStepsByTrip(tripID int64) ([]*Step, error) {
	rows, err := s.db.Query(`
		SELECT id, trip_id, name, COALESCE(location, ''), COALESCE(start_date, ''),
		       COALESCE(end_date, ''), COALESCE(description, ''), created_at
		FROM trip_steps WHERE trip_id = ?
		ORDER BY start_date ASC, created_at ASC
	`, tripID)

	if err != nil {
		return nil, fmt.Errorf("failed to query steps: %w", err)
	}
	defer rows.Close()

	var steps []*Step
	for rows.Next() {
		st := &Step{}
		err := rows.Scan(
			&st.ID, &st.TripID, &st.Name, &st.Location, &st.StartDate,
			&st.EndDate, &st.Description, &st.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, st)
	}

	return steps, rows.Err()
}

// GetStepByID retrieves a step by its own id, independent of the trip.
// Returns (nil, nil) if no step exists with that id.
func (s *Store) GetStepByID(id int64) (*Step, error) {
	st := &Step{}
	err := s.db.QueryRow(`
		SELECT id, trip_id, name, COALESCE(location, ''), COALESCE(start_date, ''),
		       COALESCE(end_date, ''), COALESCE(description, ''), created_at
		FROM trip_steps WHERE id = ?
	`, id).Scan(
		&st.ID, &st.TripID, &st.Name, &st.Location, &st.StartDate,
		&st.EndDate, &st.Description, &st.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get step: %w", err)
	}

	return st, nil
}

// UpdateStep applies a partial update to a step using the same
// read-merge-rewrite pattern as UpdateTrip. Returns false if the step does
// not exist.
func (s *Store) UpdateStep(id int64, u *StepUpdate) (bool, error) {
	current, err := s.GetStepByID(id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	merged := *current
	if u.Name != nil {
		merged.Name = *u.Name
	}
	if u.Location != nil {
		merged.Location = *u.Location
	}
	if u.StartDate != nil {
		merged.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		merged.EndDate = *u.EndDate
	}
	if u.Description != nil {
		merged.Description = *u.Description
	}

	_, err = s.db.Exec(`
		UPDATE trip_steps SET
			name = ?,
			location = ?,
			start_date = ?,
			end_date = ?,
			description = ?
		WHERE id = ?
	`, merged.Name, nullIfEmpty(merged.Location), nullIfEmpty(merged.StartDate),
		nullIfEmpty(merged.EndDate), nullIfEmpty(merged.Description), id)

	if err != nil {
		return false, fmt.Errorf("failed to update step: %w", err)
	}

	return true, nil
}

// DeleteStep deletes a step by id. Journal entries that referenced the step
// survive with their step reference cleared to NULL (set-null cascade).
// Deleting an id that does not exist is a no-op success.
func (s *Store) DeleteStep(id int64) error {
	_, err := s.db.Exec("DELETE FROM trip_steps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete step: %w", err)
	}

	return nil
}
