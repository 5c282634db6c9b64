package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripflow/tripflow/internal/util"
)

// parseID parses a positional id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", util.ErrInvalidInput, arg)
	}
	return id, nil
}

// changedString returns a pointer to the flag value when the user set the
// flag, nil otherwise. Update commands use this to build partial payloads:
// an untouched flag means "keep the stored value".
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// changedFloat64 is changedString for float flags
func changedFloat64(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// changedBool is changedString for bool flags
func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// changedInt64 is changedString for int64 flags
func changedInt64(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt64(name)
	return &v
}

// validDate checks an ISO date flag value (YYYY-MM-DD). Empty is allowed
// for optional date fields.
func validDate(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%w: %q is not a date (want YYYY-MM-DD)", util.ErrInvalidInput, value)
	}
	return nil
}
