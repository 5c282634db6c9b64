package store

import (
	"database/sql"
	"fmt"
)

// Checklist represents a packing or task list scoped to a trip
type Checklist struct {
	ID          int64
	TripID      int64
	Title       string
	Description string
	CreatedAt   string
}

// ChecklistUpdate holds a partial checklist payload for UpdateChecklist.
// A nil field keeps the currently stored value.
type ChecklistUpdate struct {
	Title       *string
	Description *string
}

// ChecklistItem represents one line item of a checklist. IsChecked is
// persisted as 0/1 but only ever surfaced as a bool; no caller observes the
// integer form.
type ChecklistItem struct {
	ID          int64
	ChecklistID int64
	Text        string
	IsChecked   bool
	CreatedAt   string
}

// ChecklistItemUpdate holds a partial item payload for UpdateChecklistItem
type ChecklistItemUpdate struct {
	Text      *string
	IsChecked *bool
}

// boolToInt converts a checked flag to its 0/1 storage form
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// InsertChecklist inserts a checklist and sets c.ID to the generated id
func (s *Store) InsertChecklist(c *Checklist) error {
	result, err := s.db.Exec(`
		INSERT INTO checklists (trip_id, title, description)
		VALUES (?, ?, ?)
	`, c.TripID, c.Title, nullIfEmpty(c.Description))

	if err != nil {
		return fmt.Errorf("failed to insert checklist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get checklist ID: %w", err)
	}
	c.ID = id

	return nil
}

// GetChecklistsByTrip retrieves a trip's checklists, oldest first
func (s *Store) GetChecklistsByTrip(tripID int64) ([]*Checklist, error) {
	rows, err := s.db.Query(`
		SELECT id, trip_id, title, COALESCE(description, ''), created_at
		FROM checklists WHERE trip_id = ?
		ORDER BY created_at ASC, id ASC
	`, tripID)

	if err != nil {
		return nil, fmt.Errorf("failed to query checklists: %w", err)
	}
	defer rows.Close()

	var checklists []*Checklist
	for rows.Next() {
		c := &Checklist{}
		err := rows.Scan(&c.ID, &c.TripID, &c.Title, &c.Description, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}
		checklists = append(checklists, c)
	}

	return checklists, rows.Err()
}

// GetChecklistByID retrieves a checklist by id. Returns (nil, nil) if no
// checklist exists with that id.
func (s *Store) GetChecklistByID(id int64) (*Checklist, error) {
	c := &Checklist{}
	err := s.db.QueryRow(`
		SELECT id, trip_id, title, COALESCE(description, ''), created_at
		FROM checklists WHERE id = ?
	`, id).Scan(&c.ID, &c.TripID, &c.Title, &c.Description, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}

	return c, nil
}

// UpdateChecklist applies a partial update to a checklist using the
// read-merge-rewrite pattern. Returns false if the checklist does not
// exist.
func (s *Store) UpdateChecklist(id int64, u *ChecklistUpdate) (bool, error) {
	current, err := s.GetChecklistByID(id)
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
	if u.Description != nil {
		merged.Description = *u.Description
	}

	_, err = s.db.Exec(`
		UPDATE checklists SET
			title = ?,
			description = ?
		WHERE id = ?
	`, merged.Title, nullIfEmpty(merged.Description), id)

	if err != nil {
		return false, fmt.Errorf("failed to update checklist: %w", err)
	}

	return true, nil
}

// DeleteChecklist deletes a checklist by id; its items go with it via the
// cascade rule. Deleting an id that does not exist is a no-op success.
func (s *Store) DeleteChecklist(id int64) error {
	_, err := s.db.Exec("DELETE FROM checklists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist: %w", err)
	}

	return nil
}

// InsertChecklistItem inserts a line item and sets item.ID to the generated
// id
func (s *Store) InsertChecklistItem(item *ChecklistItem) error {
	result, err := s.db.Exec(`
		INSERT INTO checklist_items (checklist_id, text, is_checked)
		VALUES (?, ?, ?)
	`, item.ChecklistID, item.Text, boolToInt(item.IsChecked))

	if err != nil {
		return fmt.Errorf("failed to insert checklist item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get checklist item ID: %w", err)
	}
	item.ID = id

	return nil
}

// GetChecklistItems retrieves a checklist's items, oldest first
func (s *Store) GetChecklistItems(checklistID int64) ([]*ChecklistItem, error) {
	rows, err := s.db.Query(`
		SELECT id, checklist_id, text, is_checked, created_at
		FROM checklist_items WHERE checklist_id = ?
		ORDER BY created_at ASC, id ASC
	`, checklistID)

	if err != nil {
		return nil, fmt.Errorf("failed to query checklist items: %w", err)
	}
	defer rows.Close()

	var items []*ChecklistItem
	for rows.Next() {
		item := &ChecklistItem{}
		var checked int
		err := rows.Scan(&item.ID, &item.ChecklistID, &item.Text, &checked, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		item.IsChecked = checked != 0
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetChecklistItemByID retrieves one line item by id. Returns (nil, nil) if
// no item exists with that id.
func (s *Store) GetChecklistItemByID(id int64) (*ChecklistItem, error) {
	item := &ChecklistItem{}
	var checked int
	err := s.db.QueryRow(`
		SELECT id, checklist_id, text, is_checked, created_at
		FROM checklist_items WHERE id = ?
	`, id).Scan(&item.ID, &item.ChecklistID, &item.Text, &checked, &item.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item: %w", err)
	}

	item.IsChecked = checked != 0
	return item, nil
}

// UpdateChecklistItem applies a partial update to a line item. Returns
// false if the item does not exist.
func (s *Store) UpdateChecklistItem(id int64, u *ChecklistItemUpdate) (bool, error) {
	current, err := s.GetChecklistItemByID(id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	merged := *current
	if u.Text != nil {
		merged.Text = *u.Text
	}
	if u.IsChecked != nil {
		merged.IsChecked = *u.IsChecked
	}

	_, err = s.db.Exec(`
		UPDATE checklist_items SET
			text = ?,
			is_checked = ?
		WHERE id = ?
	`, merged.Text, boolToInt(merged.IsChecked), id)

	if err != nil {
		return false, fmt.Errorf("failed to update checklist item: %w", err)
	}

	return true, nil
}

// DeleteChecklistItem deletes a line item by id. Deleting an id that does
// not exist is a no-op success.
func (s *Store) DeleteChecklistItem(id int64) error {
	_, err := s.db.Exec("DELETE FROM checklist_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}

	return nil
}

// ToggleChecklistItem flips an item's checked state: read the current
// value, write back its negation. Two independent statements, so two
// concurrent toggles on the same item can race; last write wins. Returns
// false if the item does not exist.
func (s *Store) ToggleChecklistItem(id int64) (bool, error) {
	current, err := s.GetChecklistItemByID(id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	_, err = s.db.Exec(`
		UPDATE checklist_items SET is_checked = ? WHERE id = ?
	`, boolToInt(!current.IsChecked), id)

	if err != nil {
		return false, fmt.Errorf("failed to toggle checklist item: %w", err)
	}

	return true, nil
}
