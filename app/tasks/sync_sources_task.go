package tasks

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/rss-harvester/app/database"
	"github.com/lysyi3m/rss-harvester/app/feed"
)

// SyncSourcesTask upserts the seed source list into the feed registry.
// Per-source failures are logged and skipped so one bad seed never blocks
// the rest of the registry.
type SyncSourcesTask struct {
	Task
	sources    []feed.Source
	sourceRepo database.SourceRepository
}

func NewSyncSourcesTask(sources []feed.Source, sourceRepo database.SourceRepository) *SyncSourcesTask {
	return &SyncSourcesTask{
		Task:       NewTask(TaskTypeSyncSources, "registry"),
		sources:    sources,
		sourceRepo: sourceRepo,
	}
}

func (t *SyncSourcesTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	synced := 0
	for _, source := range t.sources {
		if err := t.sourceRepo.UpsertSource(source); err != nil {
			slog.Warn("Failed to register source", "url", source.URL, "error", err)
			continue
		}
		synced++
	}

	slog.Info("Task completed",
		"type", "SyncSources",
		"duration", t.GetDuration(),
		"synced", synced,
		"total", len(t.sources))

	return nil
}
