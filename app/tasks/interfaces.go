package tasks

import "github.com/lysyi3m/rss-harvester/app/feed"

// TaskSchedulerInterface defines the interface for background task scheduling.
// Used by the main application to run the ingestion and pruning cycles, and
// by the API to trigger runs on demand.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueIngest(category feed.Category) error
	EnqueuePrune() error
}
