package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"activity-forecast/models"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS resolved_locations (
	query_key   TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	country     TEXT NOT NULL DEFAULT '',
	latitude    REAL NOT NULL,
	longitude   REAL NOT NULL,
	timezone    TEXT NOT NULL DEFAULT '',
	resolved_at INTEGER NOT NULL
)`

// locationRow mirrors one resolved_locations row
type locationRow struct {
	QueryKey   string  `db:"query_key"`
	Name       string  `db:"name"`
	Country    string  `db:"country"`
	Latitude   float64 `db:"latitude"`
	Longitude  float64 `db:"longitude"`
	Timezone   string  `db:"timezone"`
	ResolvedAt int64   `db:"resolved_at"`
}

// SQLiteLocationStore keeps resolved locations in a local sqlite file
type SQLiteLocationStore struct {
	db *sqlx.DB
}

// Ensure SQLiteLocationStore implements LocationStore
var _ LocationStore = (*SQLiteLocationStore)(nil)

// OpenSQLiteLocationStore opens (or creates) the store at path
func OpenSQLiteLocationStore(path string) (*SQLiteLocationStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open location cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create location cache schema: %w", err)
	}
	return &SQLiteLocationStore{db: db}, nil
}

// Get returns the entry stored under key
func (s *SQLiteLocationStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var row locationRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM resolved_locations WHERE query_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read location %q: %w", key, err)
	}
	return Entry{
		Location: models.ResolvedLocation{
			Name:      row.Name,
			Country:   row.Country,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			Timezone:  row.Timezone,
		},
		Timestamp: time.Unix(row.ResolvedAt, 0),
	}, true, nil
}

// Put inserts or replaces the entry under key
func (s *SQLiteLocationStore) Put(ctx context.Context, key string, entry Entry) error {
	row := locationRow{
		QueryKey:   key,
		Name:       entry.Location.Name,
		Country:    entry.Location.Country,
		Latitude:   entry.Location.Latitude,
		Longitude:  entry.Location.Longitude,
		Timezone:   entry.Location.Timezone,
		ResolvedAt: entry.Timestamp.Unix(),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO resolved_locations (query_key, name, country, latitude, longitude, timezone, resolved_at)
		VALUES (:query_key, :name, :country, :latitude, :longitude, :timezone, :resolved_at)
		ON CONFLICT(query_key) DO UPDATE SET
			name = excluded.name,
			country = excluded.country,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			timezone = excluded.timezone,
			resolved_at = excluded.resolved_at`, row)
	if err != nil {
		return fmt.Errorf("failed to store location %q: %w", key, err)
	}
	return nil
}

// Prune removes entries resolved before the cutoff and returns how many went
func (s *SQLiteLocationStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resolved_locations WHERE resolved_at < ?`, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune location cache: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database
func (s *SQLiteLocationStore) Close() error {
	return s.db.Close()
}
