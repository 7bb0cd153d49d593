package tasks

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/rss-harvester/app/database"
	"github.com/lysyi3m/rss-harvester/app/feed"
)

// defaultSourceName is used when a feed document carries no channel title.
const defaultSourceName = "Technology"

// IngestCategoryTask runs one ingestion cycle for a single content category:
// it reads the category's active sources from the registry, fetches and
// parses each feed sequentially, and stores up to maxNewItems new entries per
// feed. Entries already present (by GUID or link) do not count against the
// cap. Every per-entry and per-feed failure is logged and skipped; the
// category run itself only fails on registry errors.
type IngestCategoryTask struct {
	Task
	Category      feed.Category
	httpClient    *http.Client
	parser        *feed.Parser
	sanitizer     *feed.Sanitizer
	imageResolver *feed.ImageResolver
	sourceRepo    database.SourceRepository
	contentRepo   database.ContentRepository
	userAgent     string
	feedTimeout   time.Duration
	maxNewItems   int
}

type ingestStats struct {
	New        int
	Duplicates int
	Skipped    int
}

func NewIngestCategoryTask(category feed.Category, httpClient *http.Client,
	parser *feed.Parser, sanitizer *feed.Sanitizer, imageResolver *feed.ImageResolver,
	sourceRepo database.SourceRepository, contentRepo database.ContentRepository,
	userAgent string, feedTimeout time.Duration, maxNewItems int) *IngestCategoryTask {
	return &IngestCategoryTask{
		Task:          NewTask(TaskTypeIngestCategory, string(category)),
		Category:      category,
		httpClient:    httpClient,
		parser:        parser,
		sanitizer:     sanitizer,
		imageResolver: imageResolver,
		sourceRepo:    sourceRepo,
		contentRepo:   contentRepo,
		userAgent:     userAgent,
		feedTimeout:   feedTimeout,
		maxNewItems:   maxNewItems,
	}
}

func (t *IngestCategoryTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	sources, err := t.sourceRepo.GetActiveSources(t.Category)
	if err != nil {
		return fmt.Errorf("failed to load sources for category %s: %w", t.Category, err)
	}

	var totals ingestStats
	for _, source := range sources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stats, err := t.processSource(ctx, source)
		fetchError := ""
		if err != nil {
			fetchError = err.Error()
			slog.Error("Feed processing failed",
				"category", string(t.Category), "source", source.Name, "url", source.URL, "error", err)
		}

		if updateErr := t.sourceRepo.UpdateFetchResult(source.ID, time.Now().UTC(), fetchError); updateErr != nil {
			slog.Warn("Failed to record fetch result", "source", source.Name, "error", updateErr)
		}

		totals.New += stats.New
		totals.Duplicates += stats.Duplicates
		totals.Skipped += stats.Skipped
	}

	slog.Info("Task completed",
		"type", "IngestCategory",
		"category", string(t.Category),
		"duration", t.GetDuration(),
		"sources", len(sources),
		"new", totals.New,
		"duplicates", totals.Duplicates,
		"skipped", totals.Skipped)

	return nil
}

func (t *IngestCategoryTask) processSource(ctx context.Context, source database.FeedSource) (ingestStats, error) {
	var stats ingestStats

	data, err := t.fetchFeed(ctx, source.URL)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch feed: %w", err)
	}

	metadata, entries, err := t.parser.Run(data)
	if err != nil {
		return stats, fmt.Errorf("failed to parse feed: %w", err)
	}

	sourceName := cmp.Or(metadata.Title, defaultSourceName)

	for _, entry := range entries {
		if stats.New >= t.maxNewItems {
			break
		}

		inserted, err := t.processEntry(ctx, sourceName, entry)
		if err != nil {
			stats.Skipped++
			slog.Warn("Entry skipped",
				"category", string(t.Category), "source", source.Name, "link", entry.Link, "error", err)
			continue
		}

		if inserted {
			stats.New++
		} else {
			stats.Duplicates++
		}
	}

	return stats, nil
}

func (t *IngestCategoryTask) processEntry(ctx context.Context, sourceName string, entry feed.Entry) (bool, error) {
	exists, err := t.contentRepo.Exists(t.Category, entry.GUID, entry.Link)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicates: %w", err)
	}
	if exists {
		return false, nil
	}

	pubDate, err := feed.ParseDate(entry.Published, entry.Updated)
	if err != nil {
		return false, err
	}

	item := database.ContentItem{
		Title:       t.sanitizer.Run(entry.Title),
		Description: t.sanitizer.Run(entry.Description),
		PubDate:     pubDate,
		Link:        entry.Link,
		SourceName:  sourceName,
		GUID:        entry.GUID,
	}

	if imageURL := t.imageResolver.Run(ctx, entry); imageURL != "" {
		item.Image = &imageURL
	}

	inserted, err := t.contentRepo.Insert(t.Category, item)
	if err != nil {
		return false, fmt.Errorf("failed to insert content item: %w", err)
	}

	return inserted, nil
}

func (t *IngestCategoryTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, t.feedTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
