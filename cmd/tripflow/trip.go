package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tripflow/tripflow/internal/geocode"
	"github.com/tripflow/tripflow/internal/store"
	"github.com/tripflow/tripflow/internal/util"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage trips",
}

var tripAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a trip",
	Long: `Create a trip.

When a destination is given it is geocoded via OpenStreetMap, best effort:
an unreachable or unknown destination only suppresses the coordinates line,
the trip is created either way.`,
	RunE: runTripAdd,
}

var tripListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trips, most recent first",
	RunE:  runTripList,
}

var tripShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one trip with its steps and checklists",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripShow,
}

var tripUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a trip",
	Long: `Update a trip. Only the flags you pass are changed; every other
field keeps its stored value.`,
	Args: cobra.ExactArgs(1),
	RunE: runTripUpdate,
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a trip and everything attached to it",
	Long: `Delete a trip. Its steps, checklists (with their items) and journal
entries (with their media) are deleted with it. Deleting an id that does
not exist is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runTripDelete,
}

func init() {
	rootCmd.AddCommand(tripCmd)
	tripCmd.AddCommand(tripAddCmd, tripListCmd, tripShowCmd, tripUpdateCmd, tripDeleteCmd)

	tripAddCmd.Flags().String("title", "", "trip title (required)")
	tripAddCmd.Flags().String("destination", "", "free-text destination")
	tripAddCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	tripAddCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	tripAddCmd.Flags().Float64("budget", 0, "budget")
	tripAddCmd.Flags().String("notes", "", "free-text notes")
	tripAddCmd.Flags().String("image", "", "cover image URI")
	tripAddCmd.MarkFlagRequired("title")

	tripUpdateCmd.Flags().String("title", "", "trip title")
	tripUpdateCmd.Flags().String("destination", "", "free-text destination")
	tripUpdateCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	tripUpdateCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	tripUpdateCmd.Flags().Float64("budget", 0, "budget")
	tripUpdateCmd.Flags().String("notes", "", "free-text notes")
	tripUpdateCmd.Flags().String("image", "", "cover image URI")
}

func runTripAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", util.ErrInvalidInput)
	}

	destination, _ := cmd.Flags().GetString("destination")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	budget, _ := cmd.Flags().GetFloat64("budget")
	notes, _ := cmd.Flags().GetString("notes")
	image, _ := cmd.Flags().GetString("image")

	for _, date := range []string{start, end} {
		if err := validDate(date); err != nil {
			return err
		}
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	trip := &store.Trip{
		Title:       title,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
		Notes:       notes,
		ImageURI:    image,
	}

	if err := db.InsertTrip(trip); err != nil {
		return err
	}

	util.SuccessLog("Created trip %d: %s", trip.ID, trip.Title)

	// Geocoding is best effort and independent of the insert above: a
	// failure here only means no coordinates are shown.
	if destination != "" {
		if coords := resolveDestination(db, destination); coords != nil {
			fmt.Printf("Destination resolves to %.5f, %.5f\n", coords.Lat, coords.Lon)
		} else {
			util.InfoLog("No coordinates for %q", destination)
		}
	}

	return nil
}

// resolveDestination geocodes through the database-backed cache, swallowing
// every failure into "no coordinates".
func resolveDestination(db *store.Store, destination string) *geocode.Coordinates {
	client := geocode.NewClient()
	defer client.Close()

	cache := geocode.NewCache(db.DB(), client)
	if err := cache.EnsureSchema(); err != nil {
		util.WarnLog("Geocode cache unavailable: %v", err)
		coords, err := client.Geocode(context.Background(), destination)
		if err != nil {
			util.WarnLog("Geocoding failed: %v", err)
			return nil
		}
		return coords
	}

	coords, err := cache.Geocode(context.Background(), destination)
	if err != nil {
		util.WarnLog("Geocoding failed: %v", err)
		return nil
	}
	return coords
}

func runTripList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	trips, err := db.GetTrips()
	if err != nil {
		return err
	}

	if len(trips) == 0 {
		fmt.Println("No trips yet. Create one with 'tripflow trip add'.")
		return nil
	}

	for _, t := range trips {
		line := fmt.Sprintf("%4d  %s", t.ID, t.Title)
		if t.Destination != "" {
			line += "  (" + t.Destination + ")"
		}
		if t.StartDate != "" {
			line += "  " + t.StartDate
			if t.EndDate != "" {
				line += " - " + t.EndDate
			}
		}
		if t.Budget > 0 {
			line += "  budget " + humanize.CommafWithDigits(t.Budget, 2)
		}
		fmt.Println(line)
	}

	return nil
}

func runTripShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	trip, err := db.GetTripByID(id)
	if err != nil {
		return err
	}
	if trip == nil {
		return fmt.Errorf("trip %d: %w", id, util.ErrNotFound)
	}

	fmt.Printf("Trip %d: %s\n", trip.ID, trip.Title)
	if trip.Destination != "" {
		fmt.Printf("  Destination: %s\n", trip.Destination)
	}
	if trip.StartDate != "" || trip.EndDate != "" {
		fmt.Printf("  Dates:       %s - %s\n", trip.StartDate, trip.EndDate)
	}
	if trip.Budget > 0 {
		fmt.Printf("  Budget:      %s\n", humanize.CommafWithDigits(trip.Budget, 2))
	}
	if trip.Notes != "" {
		fmt.Printf("  Notes:       %s\n", trip.Notes)
	}
	if trip.ImageURI != "" {
		fmt.Printf("  Image:       %s\n", trip.ImageURI)
	}

	steps, err := db.GetStepsByTrip(id)
	if err != nil {
		return err
	}
	if len(steps) > 0 {
		fmt.Printf("  Steps:\n")
		for _, st := range steps {
			fmt.Printf("    %4d  %s", st.ID, st.Name)
			if st.StartDate != "" {
				fmt.Printf("  %s", st.StartDate)
			}
			fmt.Println()
		}
	}

	checklists, err := db.GetChecklistsByTrip(id)
	if err != nil {
		return err
	}
	if len(checklists) > 0 {
		fmt.Printf("  Checklists:\n")
		for _, c := range checklists {
			items, err := db.GetChecklistItems(c.ID)
			if err != nil {
				return err
			}
			done := 0
			for _, item := range items {
				if item.IsChecked {
					done++
				}
			}
			fmt.Printf("    %4d  %s (%d/%d)\n", c.ID, c.Title, done, len(items))
		}
	}

	return nil
}

func runTripUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	update := &store.TripUpdate{
		Title:       changedString(cmd, "title"),
		Destination: changedString(cmd, "destination"),
		StartDate:   changedString(cmd, "start"),
		EndDate:     changedString(cmd, "end"),
		Budget:      changedFloat64(cmd, "budget"),
		Notes:       changedString(cmd, "notes"),
		ImageURI:    changedString(cmd, "image"),
	}

	for _, date := range []*string{update.StartDate, update.EndDate} {
		if date != nil {
			if err := validDate(*date); err != nil {
				return err
			}
		}
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.UpdateTrip(id, update)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("trip %d: %w", id, util.ErrNotFound)
	}

	util.SuccessLog("Updated trip %d", id)
	return nil
}

func runTripDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteTrip(id); err != nil {
		return err
	}

	util.SuccessLog("Deleted trip %d", id)
	return nil
}
