package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripflow/tripflow/internal/store"
	"github.com/tripflow/tripflow/internal/util"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Manage itinerary steps",
}

var stepAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a step to a trip's itinerary",
	RunE:  runStepAdd,
}

var stepListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a trip's steps in itinerary order",
	RunE:  runStepList,
}

var stepShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one step",
	Args:  cobra.ExactArgs(1),
	RunE:  runStepShow,
}

var stepUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a step",
	Args:  cobra.ExactArgs(1),
	RunE:  runStepUpdate,
}

var stepDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a step",
	Long: `Delete a step. Journal entries written for the step are kept; they
just lose their step association. Deleting an id that does not exist is a
no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runStepDelete,
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.AddCommand(stepAddCmd, stepListCmd, stepShowCmd, stepUpdateCmd, stepDeleteCmd)

	stepAddCmd.Flags().Int64("trip", 0, "owning trip id (required)")
	stepAddCmd.Flags().String("name", "", "step name (required)")
	stepAddCmd.Flags().String("location", "", "location")
	stepAddCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	stepAddCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	stepAddCmd.Flags().String("description", "", "description")
	stepAddCmd.MarkFlagRequired("trip")
	stepAddCmd.MarkFlagRequired("name")

	stepListCmd.Flags().Int64("trip", 0, "trip id (required)")
	stepListCmd.MarkFlagRequired("trip")

	stepUpdateCmd.Flags().String("name", "", "step name")
	stepUpdateCmd.Flags().String("location", "", "location")
	stepUpdateCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	stepUpdateCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	stepUpdateCmd.Flags().String("description", "", "description")
}

func runStepAdd(cmd *cobra.Command, args []string) error {
	tripID, _ := cmd.Flags().GetInt64("trip")
	name, _ := cmd.Flags().GetString("name")
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", util.ErrInvalidInput)
	}

	location, _ := cmd.Flags().GetString("location")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	description, _ := cmd.Flags().GetString("description")

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

	step := &store.Step{
		TripID:      tripID,
		Name:        name,
		Location:    location,
		StartDate:   start,
		EndDate:     end,
		Description: description,
	}

	if err := db.InsertStep(step); err != nil {
		return err
	}

	util.SuccessLog("Created step %d: %s", step.ID, step.Name)
	return nil
}

func runStepList(cmd *cobra.Command, args []string) error {
	tripID, _ := cmd.Flags().GetInt64("trip")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	steps, err := db.GetStepsByTrip(tripID)
	if err != nil {
		return err
	}

	if len(steps) == 0 {
		fmt.Println("No steps for this trip.")
		return nil
	}

	for _, st := range steps {
		line := fmt.Sprintf("%4d  %s", st.ID, st.Name)
		if st.Location != "" {
			line += "  @ " + st.Location
		}
		if st.StartDate != "" {
			line += "  " + st.StartDate
			if st.EndDate != "" {
				line += " - " + st.EndDate
			}
		}
		fmt.Println(line)
	}

	return nil
}

func runStepShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	step, err := db.GetStepByID(id)
	if err != nil {
		return err
	}
	if step == nil {
		return fmt.Errorf("step %d: %w", id, util.ErrNotFound)
	}

	fmt.Printf("Step %d: %s (trip %d)\n", step.ID, step.Name, step.TripID)
	if step.Location != "" {
		fmt.Printf("  Location:    %s\n", step.Location)
	}
	if step.StartDate != "" || step.EndDate != "" {
		fmt.Printf("  Dates:       %s - %s\n", step.StartDate, step.EndDate)
	}
	if step.Description != "" {
		fmt.Printf("  Description: %s\n", step.Description)
	}

	entries, err := db.GetJournalEntriesByStep(id)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		fmt.Printf("  Journal entries:\n")
		for _, e := range entries {
			fmt.Printf("    %4d  %s  %s\n", e.ID, e.EntryDate, e.Title)
		}
	}

	return nil
}

func runStepUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	update := &store.StepUpdate{
		Name:        changedString(cmd, "name"),
		Location:    changedString(cmd, "location"),
		StartDate:   changedString(cmd, "start"),
		EndDate:     changedString(cmd, "end"),
		Description: changedString(cmd, "description"),
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

	ok, err := db.UpdateStep(id, update)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("step %d: %w", id, util.ErrNotFound)
	}

	util.SuccessLog("Updated step %d", id)
	return nil
}

func runStepDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteStep(id); err != nil {
		return err
	}

	util.SuccessLog("Deleted step %d", id)
	return nil
}
