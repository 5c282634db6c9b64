package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripflow/tripflow/internal/geocode"
	"github.com/tripflow/tripflow/internal/util"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <destination>",
	Short: "Resolve a destination to map coordinates",
	Long: `Resolve a free-text destination to latitude/longitude via the
OpenStreetMap Nominatim API.

Lookups are cached in the database; pass --no-cache to force a fresh
lookup. An unresolvable destination prints "unavailable" and is not an
error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGeocode,
}

func init() {
	rootCmd.AddCommand(geocodeCmd)

	geocodeCmd.Flags().Bool("no-cache", false, "bypass the lookup cache")
	geocodeCmd.Flags().Duration("max-age", 0, "evict cache entries older than this before looking up")
}

func runGeocode(cmd *cobra.Command, args []string) error {
	destination := strings.Join(args, " ")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	maxAge, _ := cmd.Flags().GetDuration("max-age")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	client := geocode.NewClient()
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	var coords *geocode.Coordinates
	if noCache {
		coords, err = client.Geocode(ctx, destination)
	} else {
		cache := geocode.NewCache(db.DB(), client)
		if err := cache.EnsureSchema(); err != nil {
			return err
		}
		if maxAge > 0 {
			evicted, err := cache.ClearOldEntries(maxAge)
			if err != nil {
				util.WarnLog("Cache eviction failed: %v", err)
			} else if evicted > 0 {
				util.DebugLog("Evicted %d stale cache entries", evicted)
			}
		}
		coords, err = cache.Geocode(ctx, destination)
	}
	if err != nil {
		// Network trouble is reported but still renders as unavailable;
		// nothing upstream treats a failed lookup as fatal.
		util.WarnLog("Geocoding failed: %v", err)
		coords = nil
	}

	if coords == nil {
		fmt.Println("unavailable")
		return nil
	}

	fmt.Printf("%.7f %.7f\n", coords.Lat, coords.Lon)
	return nil
}
