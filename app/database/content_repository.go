package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/rss-harvester/app/feed"
)

type contentRepository struct {
	db *DB
}

func NewContentRepository(db *DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Exists(category feed.Category, guid, link string) (bool, error) {
	table, err := contentTable(category)
	if err != nil {
		return false, err
	}

	var one int
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE guid = ? OR link = ? LIMIT 1", table)
	err = r.db.QueryRow(query, guid, link).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existing content: %w", err)
	}

	return true, nil
}

func (r *contentRepository) Insert(category feed.Category, item ContentItem) (bool, error) {
	table, err := contentTable(category)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, pub_date, link, source_name, guid, image)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, table)

	_, err = r.db.Exec(query, item.Title, item.Description, item.PubDate.UTC(),
		item.Link, item.SourceName, item.GUID, item.Image)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert content item: %w", err)
	}

	return true, nil
}

func (r *contentRepository) DeleteOlderThan(category feed.Category, cutoff time.Time) (int64, error) {
	table, err := contentTable(category)
	if err != nil {
		return 0, err
	}

	result, err := r.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE pub_date < ?", table), cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired content: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}

	return deleted, nil
}

func (r *contentRepository) Count(category feed.Category) (int, error) {
	table, err := contentTable(category)
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count content items: %w", err)
	}

	return count, nil
}

// isUniqueViolation detects the unique-index backstop firing on the dedup
// check-then-insert race.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
