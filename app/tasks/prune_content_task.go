package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/lysyi3m/rss-harvester/app/database"
	"github.com/lysyi3m/rss-harvester/app/feed"
)

// PruneContentTask deletes content older than the retention window from every
// category table. Re-running with nothing eligible deletes zero rows.
type PruneContentTask struct {
	Task
	contentRepo   database.ContentRepository
	retentionDays int
}

func NewPruneContentTask(contentRepo database.ContentRepository, retentionDays int) *PruneContentTask {
	return &PruneContentTask{
		Task:          NewTask(TaskTypePruneContent, "all"),
		contentRepo:   contentRepo,
		retentionDays: retentionDays,
	}
}

func (t *PruneContentTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -t.retentionDays)

	var total int64
	for _, category := range feed.Categories() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		deleted, err := t.contentRepo.DeleteOlderThan(category, cutoff)
		if err != nil {
			slog.Error("Pruning failed for category", "category", string(category), "error", err)
			continue
		}

		if deleted > 0 {
			slog.Info("Pruned expired content", "category", string(category), "deleted", deleted)
		}
		total += deleted
	}

	slog.Info("Task completed",
		"type", "PruneContent",
		"duration", t.GetDuration(),
		"retention_days", t.retentionDays,
		"deleted", total)

	return nil
}
