package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripflow/tripflow/internal/util"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all data and recreate the schema",
	Long: `Drop every table (trips, steps, checklists, journal and users) and
recreate the schema from scratch.

This is a destructive support escape hatch, not part of normal use. The
drops are not wrapped in a transaction: if one fails partway through the
database is left with a partial schema and the error is reported.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().Bool("force", false, "confirm the destructive reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		return fmt.Errorf("reset deletes all data; re-run with --force to confirm")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Reset(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	util.SuccessLog("Database reset")
	return nil
}
