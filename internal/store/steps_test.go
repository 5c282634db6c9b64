package store

import (
	"testing"
)

func insertTestTrip(t *testing.T, s *Store, title string) *Trip {
	t.Helper()

	trip := &Trip{Title: title}
	if err := s.InsertTrip(trip); err != nil {
		t.Fatalf("failed to insert trip: %v", err)
	}
	return trip
}

func TestStepInsertAndRetrieve(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Italy")

	step := &Step{
		TripID:      trip.ID,
		Name:        "Colosseum",
		Location:    "Rome",
		StartDate:   "2024-09-02",
		EndDate:     "2024-09-02",
		Description: "Morning visit",
	}

	if err := s.InsertStep(step); err != nil {
		t.Fatalf("failed to insert step: %v", err)
	}
	if step.ID == 0 {
		t.Error("expected step ID to be set after insert")
	}

	got, err := s.GetStepByID(step.ID)
	if err != nil {
		t.Fatalf("failed to get step: %v", err)
	}
	if got == nil {
		t.Fatal("expected to retrieve step, got nil")
	}
	if got.TripID != trip.ID || got.Name != "Colosseum" || got.Location != "Rome" ||
		got.Description != "Morning visit" {
		t.Errorf("retrieved step differs: %+v", got)
	}
}

func TestGetStepByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetStepByID(777)
	if err != nil {
		t.Fatalf("expected no error for missing step, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing step, got %+v", got)
	}
}

func TestGetStepsByTripItineraryOrder(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Roadtrip")

	// Inserted out of order on purpose
	for _, st := range []*Step{
		{TripID: trip.ID, Name: "Last", StartDate: "2024-07-10"},
		{TripID: trip.ID, Name: "First", StartDate: "2024-07-01"},
		{TripID: trip.ID, Name: "Middle", StartDate: "2024-07-05"},
	} {
		if err := s.InsertStep(st); err != nil {
			t.Fatalf("failed to insert step: %v", err)
		}
	}

	steps, err := s.GetStepsByTrip(trip.ID)
	if err != nil {
		t.Fatalf("failed to list steps: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	if steps[0].Name != "First" || steps[1].Name != "Middle" || steps[2].Name != "Last" {
		t.Errorf("expected itinerary order, got %s, %s, %s",
			steps[0].Name, steps[1].Name, steps[2].Name)
	}
}

func TestUpdateStepPartial(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Greece")

	step := &Step{TripID: trip.ID, Name: "Acropolis", Location: "Athens", StartDate: "2024-10-03"}
	if err := s.InsertStep(step); err != nil {
		t.Fatalf("failed to insert step: %v", err)
	}

	location := "Athens, Greece"
	ok, err := s.UpdateStep(step.ID, &StepUpdate{Location: &location})
	if err != nil || !ok {
		t.Fatalf("update failed: ok=%v err=%v", ok, err)
	}

	got, err := s.GetStepByID(step.ID)
	if err != nil {
		t.Fatalf("failed to get step: %v", err)
	}
	if got.Location != "Athens, Greece" {
		t.Errorf("expected updated location, got %q", got.Location)
	}
	if got.Name != "Acropolis" || got.StartDate != "2024-10-03" {
		t.Errorf("expected untouched fields preserved, got %+v", got)
	}
}

func TestUpdateStepMissing(t *testing.T) {
	s := newTestStore(t)

	name := "ghost"
	ok, err := s.UpdateStep(404, &StepUpdate{Name: &name})
	if err != nil {
		t.Fatalf("expected no error for missing step, got %v", err)
	}
	if ok {
		t.Error("expected update of a missing step to report false")
	}
}

func TestDeleteStepClearsJournalReference(t *testing.T) {
	s := newTestStore(t)
	trip := insertTestTrip(t, s, "Spain")

	step := &Step{TripID: trip.ID, Name: "Sagrada Familia"}
	if err := s.InsertStep(step); err != nil {
		t.Fatalf("failed to insert step: %v", err)
	}

	entry := &JournalEntry{TripID: trip.ID, StepID: step.ID, Title: "Amazing", EntryDate: "2024-08-15"}
	if err := s.InsertJournalEntry(entry); err != nil {
		t.Fatalf("failed to insert entry: %v", err)
	}

	if err := s.DeleteStep(step.ID); err != nil {
		t.Fatalf("failed to delete step: %v", err)
	}

	// The entry survives with its step reference cleared
	got, err := s.GetJournalEntryByID(entry.ID)
	if err != nil {
		t.Fatalf("failed to get entry: %v", err)
	}
	if got == nil {
		t.Fatal("expected the entry to survive step deletion")
	}
	if got.StepID != 0 {
		t.Errorf("expected cleared step reference, got %d", got.StepID)
	}
}

func TestDeleteStepMissingIsSuccess(t *testing.T) {
	s := newTestStore(t)

	if err := s.DeleteStep(9000); err != nil {
		t.Errorf("expected deleting a missing step to succeed, got %v", err)
	}
}
