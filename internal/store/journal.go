package store

import (
	"database/sql"
	"fmt"
)

// Media types accepted for journal attachments
const (
	MediaImage = "image"
	MediaAudio = "audio"
)

// JournalEntry represents one diary record for a trip, optionally tied to
// an itinerary step. StepID is 0 when the entry is not (or no longer)
// associated with a step.
type JournalEntry struct {
	ID        int64
	TripID    int64
	StepID    int64
	Title     string
	Content   string
	EntryDate string // YYYY-MM-DD
	CreatedAt string
}

// JournalEntryUpdate holds a partial entry payload for UpdateJournalEntry.
// A nil field keeps the currently stored value; the owning trip cannot be
// changed.
type JournalEntryUpdate struct {
	StepID    *int64
	Title     *string
	Content   *string
	EntryDate *string
}

// JournalMedia represents a photo or audio clip attached to a diary entry
type JournalMedia struct {
	ID          int64
	EntryID     int64
	MediaType   string // MediaImage or MediaAudio
	URI         string
	Description string
	CreatedAt   string
}

// InsertJournalEntry inserts a diary entry and sets e.ID to the generated
// id. A StepID of 0 is stored as NULL (entry not tied to a step).
func (s *Store) InsertJournalEntry(e *JournalEntry) error {
	result, err := s.db.Exec(`
		INSERT INTO journal_entries (trip_id, step_id, title, content, entry_date)
		VALUES (?, ?, ?, ?, ?)
	`, e.TripID, nullIfZero(e.StepID), e.Title, nullIfEmpty(e.Content), e.EntryDate)

	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get journal entry ID: %w", err)
	}
	e.ID = id

	return nil
}

// GetJournalEntriesByTrip retrieves a trip's diary entries, most recent
// entry date first, creation order breaking ties.
func (s *Store) GetJournalEntriesByTrip(tripID int64) ([]*JournalEntry, error) {
	return s.queryJournalEntries(`
		SELECT id, trip_id, COALESCE(step_id, 0), title, COALESCE(content, ''),
		       entry_date, created_at
		FROM journal_entries WHERE trip_id = ?
		ORDER BY entry_date DESC, created_at DESC
	`, tripID)
}

// GetJournalEntriesByStep retrieves the diary entries tied to one step,
// most recent entry date first.
func (s *Store) GetJournalEntriesByStep(stepID int64) ([]*JournalEntry, error) {
	return s.queryJournalEntries(`
		SELECT id, trip_id, COALESCE(step_id, 0), title, COALESCE(content, ''),
		       entry_date, created_at
		FROM journal_entries WHERE step_id = ?
		ORDER BY entry_date DESC, created_at DESC
	`, stepID)
}

func (s *Store) queryJournalEntries(query string, arg int64) ([]*JournalEntry, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*JournalEntry
	for rows.Next() {
		e := &JournalEntry{}
		err := rows.Scan(
			&e.ID, &e.TripID, &e.StepID, &e.Title, &e.Content,
			&e.EntryDate, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetJournalEntryByID retrieves a diary entry by id. Returns (nil, nil) if
// no entry exists with that id.
func (s *Store) GetJournalEntryByID(id int64) (*JournalEntry, error) {
	e := &JournalEntry{}
	err := s.db.QueryRow(`
		SELECT id, trip_id, COALESCE(step_id, 0), title, COALESCE(content, ''),
		       entry_date, created_at
		FROM journal_entries WHERE id = ?
	`, id).Scan(
		&e.ID, &e.TripID, &e.StepID, &e.Title, &e.Content,
		&e.EntryDate, &e.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	return e, nil
}

// UpdateJournalEntry applies a partial update to a diary entry using the
// read-merge-rewrite pattern. Returns false if the entry does not exist.
func (s *Store) UpdateJournalEntry(id int64, u *JournalEntryUpdate) (bool, error) {
	current, err := s.GetJournalEntryByID(id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	merged := *current
	if u.StepID != nil {
		merged.StepID = *u.StepID
	}
	if u.Title != nil {
		merged.Title = *u.Title
	}
	if u.Content != nil {
		merged.Content = *u.Content
	}
	if u.EntryDate != nil {
		merged.EntryDate = *u.EntryDate
	}

	_, err = s.db.Exec(`
		UPDATE journal_entries SET
			step_id = ?,
			title = ?,
			content = ?,
			entry_date = ?
		WHERE id = ?
	`, nullIfZero(merged.StepID), merged.Title, nullIfEmpty(merged.Content),
		merged.EntryDate, id)

	if err != nil {
		return false, fmt.Errorf("failed to update journal entry: %w", err)
	}

	return true, nil
}

// DeleteJournalEntry deletes a diary entry by id. Attached media rows are
// removed by the cascade rule. Deleting an id that does not exist is a
// no-op success.
func (s *Store) DeleteJournalEntry(id int64) error {
	_, err := s.db.Exec("DELETE FROM journal_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	return nil
}

// InsertJournalMedia attaches one media item to an existing entry and sets
// m.ID to the generated id. Bulk attachment is a series of independent
// InsertJournalMedia calls: there is no batch transaction, and each call's
// failure is reported on its own so the caller decides how to surface
// partial success.
func (s *Store) InsertJournalMedia(m *JournalMedia) error {
	result, err := s.db.Exec(`
		INSERT INTO journal_media (entry_id, media_type, uri, description)
		VALUES (?, ?, ?, ?)
	`, m.EntryID, m.MediaType, m.URI, nullIfEmpty(m.Description))

	if err != nil {
		return fmt.Errorf("failed to insert journal media: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get journal media ID: %w", err)
	}
	m.ID = id

	return nil
}

// GetJournalMediaByEntry retrieves an entry's media, oldest first
func (s *Store) GetJournalMediaByEntry(entryID int64) ([]*JournalMedia, error) {
	rows, err := s.db.Query(`
		SELECT id, entry_id, media_type, uri, COALESCE(description, ''), created_at
		FROM journal_media WHERE entry_id = ?
		ORDER BY created_at ASC, id ASC
	`, entryID)

	if err != nil {
		return nil, fmt.Errorf("failed to query journal media: %w", err)
	}
	defer rows.Close()

	var media []*JournalMedia
	for rows.Next() {
		m := &JournalMedia{}
		err := rows.Scan(
			&m.ID, &m.EntryID, &m.MediaType, &m.URI, &m.Description, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal media: %w", err)
		}
		media = append(media, m)
	}

	return media, rows.Err()
}

// DeleteJournalMedia deletes one media item by id. No entry-existence check
// is made; deleting an id that does not exist is a no-op success.
func (s *Store) DeleteJournalMedia(id int64) error {
	_, err := s.db.Exec("DELETE FROM journal_media WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete journal media: %w", err)
	}

	return nil
}
