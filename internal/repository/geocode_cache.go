package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
)

// GeocodeCache is a sqlite-backed cache mapping coordinates to resolved
// addresses. Coordinates are rounded to ~1 meter precision so nearby lookups
// share cache entries.
type GeocodeCache struct {
	db *sql.DB
}

// NewGeocodeCache creates a new geocode cache over db.
func NewGeocodeCache(db *sql.DB) *GeocodeCache {
	return &GeocodeCache{db: db}
}

// 5 decimal places of a degree is roughly one meter.
func roundCoord(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// Get returns the cached label for a coordinate, reporting whether it exists.
func (c *GeocodeCache) Get(ctx context.Context, lat, lng float64) (string, bool, error) {
	if c.db == nil {
		return "", false, errors.New("geocode cache: db is nil")
	}

	var label string
	err := c.db.QueryRowContext(ctx,
		`SELECT label FROM geocode_cache WHERE lat = ? AND lng = ?`,
		roundCoord(lat), roundCoord(lng),
	).Scan(&label)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("geocode cache: query: %w", err)
	}
	return label, true, nil
}

// Put stores or replaces the label for a coordinate.
func (c *GeocodeCache) Put(ctx context.Context, lat, lng float64, label string) error {
	if c.db == nil {
		return errors.New("geocode cache: db is nil")
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO geocode_cache (lat, lng, label) VALUES (?, ?, ?)`,
		roundCoord(lat), roundCoord(lng), label,
	)
	if err != nil {
		return fmt.Errorf("geocode cache: insert: %w", err)
	}
	return nil
}
