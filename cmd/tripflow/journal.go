package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tripflow/tripflow/internal/store"
	"github.com/tripflow/tripflow/internal/util"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage diary entries and their media",
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Write a diary entry",
	RunE:  runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries for a trip or a step, most recent first",
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one diary entry with its media",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a diary entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalUpdate,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a diary entry and its media",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage media attached to diary entries",
}

var mediaAddCmd = &cobra.Command{
	Use:   "add <entry-id> <uri>...",
	Short: "Attach photos or audio to a diary entry",
	Long: `Attach one or more media files to a diary entry.

Each URI is inserted on its own: when some inserts fail and others succeed
the successes are kept, and every failure is reported at the end. Audio
files without an explicit description get one from their tags when the file
is readable.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMediaAdd,
}

var mediaListCmd = &cobra.Command{
	Use:   "list <entry-id>",
	Short: "List an entry's media, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaList,
}

var mediaDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one media item",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaDelete,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd, journalListCmd, journalShowCmd, journalUpdateCmd, journalDeleteCmd, mediaCmd)
	mediaCmd.AddCommand(mediaAddCmd, mediaListCmd, mediaDeleteCmd)

	journalAddCmd.Flags().Int64("trip", 0, "owning trip id (required)")
	journalAddCmd.Flags().Int64("step", 0, "associated step id (optional)")
	journalAddCmd.Flags().String("title", "", "entry title (required)")
	journalAddCmd.Flags().String("date", "", "entry date (YYYY-MM-DD, required)")
	journalAddCmd.Flags().String("content", "", "entry text")
	journalAddCmd.MarkFlagRequired("trip")
	journalAddCmd.MarkFlagRequired("title")
	journalAddCmd.MarkFlagRequired("date")

	journalListCmd.Flags().Int64("trip", 0, "trip id")
	journalListCmd.Flags().Int64("step", 0, "step id")

	journalUpdateCmd.Flags().Int64("step", 0, "associated step id (0 clears it)")
	journalUpdateCmd.Flags().String("title", "", "entry title")
	journalUpdateCmd.Flags().String("date", "", "entry date (YYYY-MM-DD)")
	journalUpdateCmd.Flags().String("content", "", "entry text")

	mediaAddCmd.Flags().String("type", store.MediaImage, "media type: image or audio")
	mediaAddCmd.Flags().String("description", "", "description applied to every item")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	tripID, _ := cmd.Flags().GetInt64("trip")
	stepID, _ := cmd.Flags().GetInt64("step")
	title, _ := cmd.Flags().GetString("title")
	date, _ := cmd.Flags().GetString("date")
	content, _ := cmd.Flags().GetString("content")

	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", util.ErrInvalidInput)
	}
	if date == "" {
		return fmt.Errorf("%w: entry date is required", util.ErrInvalidInput)
	}
	if err := validDate(date); err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entry := &store.JournalEntry{
		TripID:    tripID,
		StepID:    stepID,
		Title:     title,
		Content:   content,
		EntryDate: date,
	}

	if err := db.InsertJournalEntry(entry); err != nil {
		return err
	}

	util.SuccessLog("Created journal entry %d: %s", entry.ID, entry.Title)
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	tripID, _ := cmd.Flags().GetInt64("trip")
	stepID, _ := cmd.Flags().GetInt64("step")

	if (tripID == 0) == (stepID == 0) {
		return fmt.Errorf("%w: pass exactly one of --trip or --step", util.ErrInvalidInput)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var entries []*store.JournalEntry
	if tripID != 0 {
		entries, err = db.GetJournalEntriesByTrip(tripID)
	} else {
		entries, err = db.GetJournalEntriesByStep(stepID)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No journal entries.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%4d  %s  %s", e.ID, e.EntryDate, e.Title)
		if e.StepID != 0 {
			line += fmt.Sprintf("  (step %d)", e.StepID)
		}
		fmt.Println(line)
	}

	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entry, err := db.GetJournalEntryByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("journal entry %d: %w", id, util.ErrNotFound)
	}

	fmt.Printf("Entry %d: %s (%s, trip %d)\n", entry.ID, entry.Title, entry.EntryDate, entry.TripID)
	if entry.StepID != 0 {
		if step, err := db.GetStepByID(entry.StepID); err == nil && step != nil {
			fmt.Printf("  Step:    %s\n", step.Name)
		}
	}
	if entry.Content != "" {
		fmt.Printf("  %s\n", entry.Content)
	}

	media, err := db.GetJournalMediaByEntry(id)
	if err != nil {
		return err
	}
	for _, m := range media {
		line := fmt.Sprintf("  [%s] %s", m.MediaType, m.URI)
		if m.Description != "" {
			line += " - " + m.Description
		}
		fmt.Println(line)
	}

	return nil
}

func runJournalUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	update := &store.JournalEntryUpdate{
		StepID:    changedInt64(cmd, "step"),
		Title:     changedString(cmd, "title"),
		Content:   changedString(cmd, "content"),
		EntryDate: changedString(cmd, "date"),
	}

	if update.EntryDate != nil {
		if *update.EntryDate == "" {
			return fmt.Errorf("%w: entry date cannot be empty", util.ErrInvalidInput)
		}
		if err := validDate(*update.EntryDate); err != nil {
			return err
		}
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.UpdateJournalEntry(id, update)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("journal entry %d: %w", id, util.ErrNotFound)
	}

	util.SuccessLog("Updated journal entry %d", id)
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteJournalEntry(id); err != nil {
		return err
	}

	util.SuccessLog("Deleted journal entry %d", id)
	return nil
}

func runMediaAdd(cmd *cobra.Command, args []string) error {
	entryID, err := parseID(args[0])
	if err != nil {
		return err
	}
	uris := args[1:]

	mediaType, _ := cmd.Flags().GetString("type")
	if mediaType != store.MediaImage && mediaType != store.MediaAudio {
		return fmt.Errorf("%w: media type must be %q or %q", util.ErrInvalidInput, store.MediaImage, store.MediaAudio)
	}
	description, _ := cmd.Flags().GetString("description")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entry, err := db.GetJournalEntryByID(entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("journal entry %d: %w", entryID, util.ErrNotFound)
	}

	bar := progressbar.Default(int64(len(uris)), "attaching media")

	// Independent inserts: one bad URI does not roll back the others
	var failures []string
	added := 0
	for _, uri := range uris {
		desc := description
		if desc == "" && mediaType == store.MediaAudio {
			desc = audioDescription(uri)
		}

		m := &store.JournalMedia{
			EntryID:     entryID,
			MediaType:   mediaType,
			URI:         uri,
			Description: desc,
		}
		if err := db.InsertJournalMedia(m); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", uri, err))
		} else {
			added++
		}
		bar.Add(1)
	}

	util.SuccessLog("Attached %d media item(s) to entry %d", added, entryID)
	if len(failures) > 0 {
		return fmt.Errorf("%d item(s) failed:\n  %s", len(failures), strings.Join(failures, "\n  "))
	}

	return nil
}

// audioDescription derives a description from an audio file's tags.
// Best effort: remote URIs and untagged or unreadable files give "".
func audioDescription(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}

	switch {
	case m.Title() != "" && m.Artist() != "":
		return m.Artist() + " - " + m.Title()
	case m.Title() != "":
		return m.Title()
	default:
		return ""
	}
}

func runMediaList(cmd *cobra.Command, args []string) error {
	entryID, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	media, err := db.GetJournalMediaByEntry(entryID)
	if err != nil {
		return err
	}

	if len(media) == 0 {
		fmt.Println("No media for this entry.")
		return nil
	}

	for _, m := range media {
		line := fmt.Sprintf("%4d  [%s] %s", m.ID, m.MediaType, m.URI)
		if m.Description != "" {
			line += " - " + m.Description
		}
		fmt.Println(line)
	}

	return nil
}

func runMediaDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteJournalMedia(id); err != nil {
		return err
	}

	util.SuccessLog("Deleted media %d", id)
	return nil
}
