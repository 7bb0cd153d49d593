package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lysyi3m/rss-harvester/app/feed"
)

type sourceRepository struct {
	db *DB
}

func NewSourceRepository(db *DB) SourceRepository {
	return &sourceRepository{db: db}
}

func (r *sourceRepository) GetActiveSources(category feed.Category) ([]FeedSource, error) {
	rows, err := r.db.Query(`
		SELECT id, name, url, category, is_active, last_fetched_at, last_error, created_at
		FROM feed_sources
		WHERE category = ? AND is_active = 1
		ORDER BY name
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to get active sources: %w", err)
	}
	defer rows.Close()

	return scanSources(rows)
}

// GetSources returns registry records, optionally filtered by category.
// An empty category returns everything.
func (r *sourceRepository) GetSources(category string) ([]FeedSource, error) {
	query := `
		SELECT id, name, url, category, is_active, last_fetched_at, last_error, created_at
		FROM feed_sources
	`
	var args []interface{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY category, name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}
	defer rows.Close()

	return scanSources(rows)
}

// UpsertSource registers a seed record. Existing rows keep their active flag
// and fetch bookkeeping; only name and category follow the seed.
func (r *sourceRepository) UpsertSource(source feed.Source) error {
	isActive := 1
	if source.Disabled {
		isActive = 0
	}

	_, err := r.db.Exec(`
		INSERT INTO feed_sources (name, url, category, is_active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			name = excluded.name,
			category = excluded.category
	`, source.Name, source.URL, string(source.Category), isActive)
	if err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

func (r *sourceRepository) UpdateFetchResult(sourceID int64, fetchedAt time.Time, fetchError string) error {
	_, err := r.db.Exec(`
		UPDATE feed_sources
		SET last_fetched_at = ?, last_error = ?
		WHERE id = ?
	`, fetchedAt.UTC(), fetchError, sourceID)
	if err != nil {
		return fmt.Errorf("failed to update fetch result: %w", err)
	}

	return nil
}

func (r *sourceRepository) GetSourceStats() (int, int, error) {
	var active, inactive int
	err := r.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN is_active = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_active = 0 THEN 1 ELSE 0 END), 0)
		FROM feed_sources
	`).Scan(&active, &inactive)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get source stats: %w", err)
	}

	return active, inactive, nil
}

func scanSources(rows *sql.Rows) ([]FeedSource, error) {
	var sources []FeedSource
	for rows.Next() {
		var source FeedSource
		var lastFetchedAt sql.NullTime
		err := rows.Scan(&source.ID, &source.Name, &source.URL, &source.Category,
			&source.IsActive, &lastFetchedAt, &source.LastError, &source.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		if lastFetchedAt.Valid {
			source.LastFetchedAt = &lastFetchedAt.Time
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}
