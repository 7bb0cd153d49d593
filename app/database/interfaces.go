package database

import (
	"time"

	"github.com/lysyi3m/rss-harvester/app/feed"
)

// ContentRepository is the store adapter for per-category content tables.
type ContentRepository interface {
	// Exists reports whether the category already holds an item with the
	// given GUID or the given link. Single atomic read; the check-then-insert
	// sequence is intentionally not transactional (ingestion runs serialized
	// per category, and unique indexes backstop the race).
	Exists(category feed.Category, guid, link string) (bool, error)

	// Insert stores an item and reports whether a row was actually added.
	// A unique-constraint violation is a benign duplicate, not an error.
	Insert(category feed.Category, item ContentItem) (bool, error)

	DeleteOlderThan(category feed.Category, cutoff time.Time) (int64, error)
	Count(category feed.Category) (int, error)
}

// SourceRepository manages the feed registry.
type SourceRepository interface {
	GetActiveSources(category feed.Category) ([]FeedSource, error)
	GetSources(category string) ([]FeedSource, error)
	UpsertSource(source feed.Source) error
	UpdateFetchResult(sourceID int64, fetchedAt time.Time, fetchError string) error
	GetSourceStats() (active int, inactive int, err error)
}
