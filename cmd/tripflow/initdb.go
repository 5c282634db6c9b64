package main

import (
	"github.com/spf13/cobra"

	"github.com/tripflow/tripflow/internal/store"
	"github.com/tripflow/tripflow/internal/util"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the database schema",
	Long: `Open the database and bring its schema up to date.

Safe to run any number of times: an already-initialized database is left
untouched and existing rows are never dropped.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CheckIntegrity(); err != nil {
		return err
	}

	util.SuccessLog("Database ready (SQLite %s)", store.SQLiteVersion())
	return nil
}
