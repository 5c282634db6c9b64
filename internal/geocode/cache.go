package geocode

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tripflow/tripflow/internal/util"
)

// Cache provides database-backed caching for geocoding lookups, so editing
// a trip with an unchanged destination never goes back to the network.
type Cache struct {
	db     *sql.DB
	client *Client
}

// NewCache creates a new cache instance
func NewCache(db *sql.DB, client *Client) *Cache {
	return &Cache{
		db:     db,
		client: client,
	}
}

// EnsureSchema creates the cache table if it doesn't exist. The table is
// store bookkeeping, independent of the domain tables; a data-layer reset
// does not touch it.
func (c *Cache) EnsureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		destination TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		cached_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		hit_count INTEGER DEFAULT 0
	);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create geocode_cache table: %w", err)
	}

	return nil
}

// Geocode resolves a destination with cache support: checks the cache
// first, falls back to the API on a miss, and stores a successful result.
// Unresolvable destinations are not cached, so a destination that later
// becomes resolvable is retried.
func (c *Cache) Geocode(ctx context.Context, destination string) (*Coordinates, error) {
	key := cacheKey(destination)
	if key == "" {
		return nil, fmt.Errorf("destination cannot be empty")
	}

	cached, err := c.getFromCache(key)
	if err == nil && cached != nil {
		util.DebugLog("Geocode cache hit: '%s' -> %f, %f", destination, cached.Lat, cached.Lon)
		c.incrementHitCount(key)
		return cached, nil
	}

	util.DebugLog("Geocode cache miss: '%s', querying API", destination)
	coords, err := c.client.Geocode(ctx, destination)
	if err != nil {
		return nil, err
	}
	if coords == nil {
		return nil, nil
	}

	if err := c.storeInCache(key, coords); err != nil {
		// A caching failure never fails the lookup itself
		util.WarnLog("Failed to cache geocode result: %v", err)
	}

	return coords, nil
}

// cacheKey normalizes a destination for use as the cache key
func cacheKey(destination string) string {
	return strings.ToLower(strings.TrimSpace(destination))
}

// getFromCache retrieves a cached lookup
func (c *Cache) getFromCache(key string) (*Coordinates, error) {
	var coords Coordinates
	err := c.db.QueryRow(`
		SELECT lat, lon FROM geocode_cache WHERE destination = ?
	`, key).Scan(&coords.Lat, &coords.Lon)

	if err == sql.ErrNoRows {
		return nil, nil // Not cached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query geocode cache: %w", err)
	}

	return &coords, nil
}

// storeInCache stores a successful lookup, keeping the hit counter across
// refreshes of the same destination
func (c *Cache) storeInCache(key string, coords *Coordinates) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO geocode_cache (destination, lat, lon, cached_at, hit_count)
		VALUES (?, ?, ?, ?, COALESCE((SELECT hit_count FROM geocode_cache WHERE destination = ?), 0))
	`, key, coords.Lat, coords.Lon, time.Now(), key)

	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	return nil
}

// incrementHitCount increments the cache hit counter
func (c *Cache) incrementHitCount(key string) {
	_, err := c.db.Exec("UPDATE geocode_cache SET hit_count = hit_count + 1 WHERE destination = ?", key)
	if err != nil {
		util.DebugLog("Failed to increment hit count: %v", err)
	}
}

// GetStats returns cache statistics
func (c *Cache) GetStats() (entries int, totalHits int64, err error) {
	err = c.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(hit_count), 0) FROM geocode_cache").Scan(&entries, &totalHits)
	return
}

// ClearCache removes all cached entries
func (c *Cache) ClearCache() error {
	_, err := c.db.Exec("DELETE FROM geocode_cache")
	return err
}

// ClearOldEntries removes cache entries older than the specified duration
func (c *Cache) ClearOldEntries(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := c.db.Exec("DELETE FROM geocode_cache WHERE cached_at < ?", cutoff)
	if err != nil {
		return 0, err
	}

	rows, _ := result.RowsAffected()
	return int(rows), nil
}
