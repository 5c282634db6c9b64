package store

import (
	"testing"
)

func insertTestChecklist(t *testing.T, s *Store, tripID int64, title string) *Checklist {
	t.Helper()

	c := &Checklist{TripID: tripID, Title: title}
	if err := s.InsertChecklist(c); err != nil {
		t.Fatalf("failed to insert checklist: %v", err)
	}
	return c
}

func TestChecklistInsertAndRetrieve(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Packing")

	c := &Checklist{TripID: trip.ID, Title: "Essentials", Description: "Don't forget"}
	if err := s.InsertChecklist(c); err != nil {
		t.Fatalf("failed to insert checklist: %v", err)
	}
	if c.ID == 0 {
		t.Error("expected checklist ID to be set after insert")
	}

	got, err := s.GetChecklistByID(c.ID)
	if err != nil {
		t.Fatalf("failed to get checklist: %v", err)
	}
	if got == nil {
		t.Fatal("expected to retrieve checklist, got nil")
	}
	if got.Title != "Essentials" || got.Description != "Don't forget" || got.TripID != trip.ID {
		t.Errorf("retrieved checklist differs: %+v", got)
	}
}

func TestGetChecklistsByTripOldestFirst(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Lists")

	titles := []string{"Packing", "Documents", "Food"}
	for _, title := range titles {
		insertTestChecklist(t, s, trip.ID, title)
	}

	checklists, err := s.GetChecklistsByTrip(trip.ID)
	if err != nil {
		t.Fatalf("failed to list checklists: %v", err)
	}
	if len(checklists) != 3 {
		t.Fatalf("expected 3 checklists, got %d", len(checklists))
	}
	for i, c := range checklists {
		if c.Title != titles[i] {
			t.Errorf("expected %s at position %d, got %s", titles[i], i, c.Title)
		}
	}
}

func TestUpdateChecklistPartial(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Rename")
	c := &Checklist{TripID: trip.ID, Title: "Old", Description: "keep"}
	if err := s.InsertChecklist(c); err != nil {
		t.Fatalf("failed to insert checklist: %v", err)
	}

	title := "New"
	ok, err := s.UpdateChecklist(c.ID, &ChecklistUpdate{Title: &title})
	if err != nil || !ok {
		t.Fatalf("update failed: ok=%v err=%v", ok, err)
	}

	got, err := s.GetChecklistByID(c.ID)
	if err != nil {
		t.Fatalf("failed to get checklist: %v", err)
	}
	if got.Title != "New" || got.Description != "keep" {
		t.Errorf("expected partial update, got %+v", got)
	}
}

func TestUpdateChecklistMissing(t *testing.T) {
	s := newTestStore(t)

	title := "ghost"
	ok, err := s.UpdateChecklist(123, &ChecklistUpdate{Title: &title})
	if err != nil {
		t.Fatalf("expected no error for missing checklist, got %v", err)
	}
	if ok {
		t.Error("expected update of a missing checklist to report false")
	}
}

func TestChecklistItemsAlwaysReadAsBool(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Bools")
	c := insertTestChecklist(t, s, trip.ID, "Mixed")

	checked := &ChecklistItem{ChecklistID: c.ID, Text: "Done", IsChecked: true}
	unchecked := &ChecklistItem{ChecklistID: c.ID, Text: "Pending", IsChecked: false}
	for _, item := range []*ChecklistItem{checked, unchecked} {
		if err := s.InsertChecklistItem(item); err != nil {
			t.Fatalf("failed to insert item: %v", err)
		}
	}

	// The storage form is an integer
	var raw int
	if err := s.db.QueryRow("SELECT is_checked FROM checklist_items WHERE id = ?", checked.ID).Scan(&raw); err != nil {
		t.Fatalf("failed to read raw value: %v", err)
	}
	if raw != 1 {
		t.Errorf("expected raw storage value 1, got %d", raw)
	}

	items, err := s.GetChecklistItems(c.ID)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].IsChecked || items[1].IsChecked {
		t.Errorf("expected normalized booleans, got %+v, %+v", items[0], items[1])
	}
}

func TestToggleChecklistItemTwiceRoundTrips(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Toggle")
	c := insertTestChecklist(t, s, trip.ID, "Flips")

	item := &ChecklistItem{ChecklistID: c.ID, Text: "Passport", IsChecked: false}
	if err := s.InsertChecklistItem(item); err != nil {
		t.Fatalf("failed to insert item: %v", err)
	}

	ok, err := s.ToggleChecklistItem(item.ID)
	if err != nil || !ok {
		t.Fatalf("first toggle failed: ok=%v err=%v", ok, err)
	}
	got, err := s.GetChecklistItemByID(item.ID)
	if err != nil {
		t.Fatalf("failed to get item: %v", err)
	}
	if !got.IsChecked {
		t.Error("expected item checked after first toggle")
	}

	ok, err = s.ToggleChecklistItem(item.ID)
	if err != nil || !ok {
		t.Fatalf("second toggle failed: ok=%v err=%v", ok, err)
	}
	got, err = s.GetChecklistItemByID(item.ID)
	if err != nil {
		t.Fatalf("failed to get item: %v", err)
	}
	if got.IsChecked {
		t.Error("expected item back to unchecked after second toggle")
	}
}

func TestToggleChecklistItemMissing(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.ToggleChecklistItem(404)
	if err != nil {
		t.Fatalf("expected no error for missing item, got %v", err)
	}
	if ok {
		t.Error("expected toggle of a missing item to report false")
	}
}

func TestUpdateChecklistItemPartial(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "ItemEdit")
	c := insertTestChecklist(t, s, trip.ID, "List")

	item := &ChecklistItem{ChecklistID: c.ID, Text: "Socks", IsChecked: true}
	if err := s.InsertChecklistItem(item); err != nil {
		t.Fatalf("failed to insert item: %v", err)
	}

	text := "Warm socks"
	ok, err := s.UpdateChecklistItem(item.ID, &ChecklistItemUpdate{Text: &text})
	if err != nil || !ok {
		t.Fatalf("update failed: ok=%v err=%v", ok, err)
	}

	got, err := s.GetChecklistItemByID(item.ID)
	if err != nil {
		t.Fatalf("failed to get item: %v", err)
	}
	if got.Text != "Warm socks" {
		t.Errorf("expected updated text, got %q", got.Text)
	}
	if !got.IsChecked {
		t.Error("expected checked state preserved across partial update")
	}
}

func TestDeleteChecklistCascadesToItems(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "DeleteList")
	c := insertTestChecklist(t, s, trip.ID, "Doomed")

	item := &ChecklistItem{ChecklistID: c.ID, Text: "Anything"}
	if err := s.InsertChecklistItem(item); err != nil {
		t.Fatalf("failed to insert item: %v", err)
	}

	if err := s.DeleteChecklist(c.ID); err != nil {
		t.Fatalf("failed to delete checklist: %v", err)
	}

	if count := countTable(t, s, "checklist_items"); count != 0 {
		t.Errorf("expected items to cascade with the checklist, got %d rows", count)
	}
}

func TestDeleteChecklistItemMissingIsSuccess(t *testing.T) {
	s := newTestStore(t)

	if err := s.DeleteChecklistItem(500); err != nil {
		t.Errorf("expected deleting a missing item to succeed, got %v", err)
	}
	if err := s.DeleteChecklist(500); err != nil {
		t.Errorf("expected deleting a missing checklist to succeed, got %v", err)
	}
}
