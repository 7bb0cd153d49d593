package database

import (
	"time"

	"github.com/lysyi3m/rss-harvester/app/feed"
)

// FeedSource is one registry record driving which feeds are fetched.
// Created by the startup seed sync or the admin surface; the ingestion run is
// the sole writer of LastFetchedAt and LastError.
type FeedSource struct {
	ID            int64
	Name          string
	URL           string
	Category      feed.Category
	IsActive      bool
	LastFetchedAt *time.Time
	LastError     string
	CreatedAt     time.Time
}

// ContentItem is one normalized article. Image is nil when no candidate image
// passed validation.
type ContentItem struct {
	ID          int64
	Title       string
	Description string
	PubDate     time.Time
	Link        string
	SourceName  string
	GUID        string
	Image       *string
	CreatedAt   time.Time
}
