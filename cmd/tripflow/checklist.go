package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripflow/tripflow/internal/store"
	"github.com/tripflow/tripflow/internal/util"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Manage packing and task checklists",
}

var checklistAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a checklist for a trip",
	RunE:  runChecklistAdd,
}

var checklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a trip's checklists, oldest first",
	RunE:  runChecklistList,
}

var checklistShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one checklist with its items",
	Args:  cobra.ExactArgs(1),
	RunE:  runChecklistShow,
}

var checklistUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a checklist",
	Args:  cobra.ExactArgs(1),
	RunE:  runChecklistUpdate,
}

var checklistDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a checklist and its items",
	Args:  cobra.ExactArgs(1),
	RunE:  runChecklistDelete,
}

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage checklist items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <checklist-id>",
	Short: "Add an item to a checklist",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemAdd,
}

var itemListCmd = &cobra.Command{
	Use:   "list <checklist-id>",
	Short: "List a checklist's items, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemList,
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemUpdate,
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemDelete,
}

var itemToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip an item between checked and unchecked",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemToggle,
}

func init() {
	rootCmd.AddCommand(checklistCmd)
	checklistCmd.AddCommand(checklistAddCmd, checklistListCmd, checklistShowCmd,
		checklistUpdateCmd, checklistDeleteCmd, itemCmd)
	itemCmd.AddCommand(itemAddCmd, itemListCmd, itemUpdateCmd, itemDeleteCmd, itemToggleCmd)

	checklistAddCmd.Flags().Int64("trip", 0, "owning trip id (required)")
	checklistAddCmd.Flags().String("title", "", "checklist title (required)")
	checklistAddCmd.Flags().String("description", "", "description")
	checklistAddCmd.MarkFlagRequired("trip")
	checklistAddCmd.MarkFlagRequired("title")

	checklistListCmd.Flags().Int64("trip", 0, "trip id (required)")
	checklistListCmd.MarkFlagRequired("trip")

	checklistUpdateCmd.Flags().String("title", "", "checklist title")
	checklistUpdateCmd.Flags().String("description", "", "description")

	itemAddCmd.Flags().String("text", "", "item text (required)")
	itemAddCmd.Flags().Bool("checked", false, "create the item already checked")
	itemAddCmd.MarkFlagRequired("text")

	itemUpdateCmd.Flags().String("text", "", "item text")
	itemUpdateCmd.Flags().Bool("checked", false, "checked state")
}

func runChecklistAdd(cmd *cobra.Command, args []string) error {
	tripID, _ := cmd.Flags().GetInt64("trip")
	title, _ := cmd.Flags().GetString("title")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", util.ErrInvalidInput)
	}
	description, _ := cmd.Flags().GetString("description")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	checklist := &store.Checklist{
		TripID:      tripID,
		Title:       title,
		Description: description,
	}

	if err := db.InsertChecklist(checklist); err != nil {
		return err
	}

	util.SuccessLog("Created checklist %d: %s", checklist.ID, checklist.Title)
	return nil
}

func runChecklistList(cmd *cobra.Command, args []string) error {
	tripID, _ := cmd.Flags().GetInt64("trip")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	checklists, err := db.GetChecklistsByTrip(tripID)
	if err != nil {
		return err
	}

	if len(checklists) == 0 {
		fmt.Println("No checklists for this trip.")
		return nil
	}

	for _, c := range checklists {
		line := fmt.Sprintf("%4d  %s", c.ID, c.Title)
		if c.Description != "" {
			line += "  - " + c.Description
		}
		fmt.Println(line)
	}

	return nil
}

func runChecklistShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	checklist, err := db.GetChecklistByID(id)
	if err != nil {
		return err
	}
	if checklist == nil {
		return fmt.Errorf("checklist %d: %w", id, util.ErrNotFound)
	}

	fmt.Printf("Checklist %d: %s (trip %d)\n", checklist.ID, checklist.Title, checklist.TripID)
	if checklist.Description != "" {
		fmt.Printf("  %s\n", checklist.Description)
	}

	items, err := db.GetChecklistItems(id)
	if err != nil {
		return err
	}
	for _, item := range items {
		mark := " "
		if item.IsChecked {
			mark = "x"
		}
		fmt.Printf("  [%s] %4d  %s\n", mark, item.ID, item.Text)
	}

	return nil
}

func runChecklistUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	update := &store.ChecklistUpdate{
		Title:       changedString(cmd, "title"),
		Description: changedString(cmd, "description"),
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.UpdateChecklist(id, update)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("checklist %d: %w", id, util.ErrNotFound)
	}

	util.SuccessLog("Updated checklist %d", id)
	return nil
}

func runChecklistDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteChecklist(id); err != nil {
		return err
	}

	util.SuccessLog("Deleted checklist %d", id)
	return nil
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	checklistID, err := parseID(args[0])
	if err != nil {
		return err
	}

	text, _ := cmd.Flags().GetString("text")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is required", util.ErrInvalidInput)
	}
	checked, _ := cmd.Flags().GetBool("checked")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	item := &store.ChecklistItem{
		ChecklistID: checklistID,
		Text:        text,
		IsChecked:   checked,
	}

	if err := db.InsertChecklistItem(item); err != nil {
		return err
	}

	util.SuccessLog("Created item %d: %s", item.ID, item.Text)
	return nil
}

func runItemList(cmd *cobra.Command, args []string) error {
	checklistID, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := db.GetChecklistItems(checklistID)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println("No items in this checklist.")
		return nil
	}

	for _, item := range items {
		mark := " "
		if item.IsChecked {
			mark = "x"
		}
		fmt.Printf("[%s] %4d  %s\n", mark, item.ID, item.Text)
	}

	return nil
}

func runItemUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	update := &store.ChecklistItemUpdate{
		Text:      changedString(cmd, "text"),
		IsChecked: changedBool(cmd, "checked"),
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.UpdateChecklistItem(id, update)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("checklist item %d: %w", id, util.ErrNotFound)
	}

	util.SuccessLog("Updated item %d", id)
	return nil
}

func runItemDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteChecklistItem(id); err != nil {
		return err
	}

	util.SuccessLog("Deleted item %d", id)
	return nil
}

func runItemToggle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.ToggleChecklistItem(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("checklist item %d: %w", id, util.ErrNotFound)
	}

	item, err := db.GetChecklistItemByID(id)
	if err != nil {
		return err
	}
	if item != nil {
		state := "unchecked"
		if item.IsChecked {
			state = "checked"
		}
		util.SuccessLog("Item %d is now %s", id, state)
	}

	return nil
}
