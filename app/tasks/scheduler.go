package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/lysyi3m/rss-harvester/app/cfg"
	"github.com/lysyi3m/rss-harvester/app/database"
	"github.com/lysyi3m/rss-harvester/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler drives the background ingestion cycle: one ingestion task per
// category per tick, retention pruning on its own slower ticker, and a
// one-time registry sync at startup. Categories run as independent tasks on
// the worker pool; within a task, feeds and entries are processed
// sequentially to keep the per-feed new-item cap well-defined.
type Scheduler struct {
	sourceRepo     database.SourceRepository
	contentRepo    database.ContentRepository
	seeds          []feed.Source
	httpClient     *http.Client
	parser         *feed.Parser
	sanitizer      *feed.Sanitizer
	imageResolver  *feed.ImageResolver
	userAgent      string
	feedTimeout    time.Duration
	maxNewItems    int
	retentionDays  int
	ingestInterval time.Duration
	pruneInterval  time.Duration
	workerCount    int
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	taskQueue      chan TaskInterface
}

func NewScheduler(seeds []feed.Source, sourceRepo database.SourceRepository,
	contentRepo database.ContentRepository, httpClient *http.Client, parser *feed.Parser,
	sanitizer *feed.Sanitizer, imageResolver *feed.ImageResolver) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		sourceRepo:     sourceRepo,
		contentRepo:    contentRepo,
		seeds:          seeds,
		httpClient:     httpClient,
		parser:         parser,
		sanitizer:      sanitizer,
		imageResolver:  imageResolver,
		userAgent:      cfg.UserAgent,
		feedTimeout:    time.Duration(cfg.FeedTimeout) * time.Second,
		maxNewItems:    cfg.MaxNewItemsPerFeed,
		retentionDays:  cfg.RetentionDays,
		ingestInterval: time.Duration(cfg.IngestInterval) * time.Second,
		pruneInterval:  time.Duration(cfg.PruneInterval) * time.Second,
		workerCount:    cfg.WorkerCount,
		ctx:            ctx,
		cancel:         cancel,
		taskQueue:      make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ingestTicker := time.NewTicker(s.ingestInterval)
		defer ingestTicker.Stop()
		pruneTicker := time.NewTicker(s.pruneInterval)
		defer pruneTicker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ingestTicker.C:
				s.enqueueIngestTasks()
			case <-pruneTicker.C:
				if err := s.EnqueuePrune(); err != nil {
					slog.Warn("Failed to enqueue PruneContentTask", "error", err)
				}
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) EnqueueIngest(category feed.Category) error {
	task := NewIngestCategoryTask(category, s.httpClient, s.parser, s.sanitizer,
		s.imageResolver, s.sourceRepo, s.contentRepo, s.userAgent, s.feedTimeout, s.maxNewItems)
	return s.EnqueueTask(task)
}

func (s *Scheduler) EnqueuePrune() error {
	return s.EnqueueTask(NewPruneContentTask(s.contentRepo, s.retentionDays))
}

func (s *Scheduler) enqueueStartupTasks() {
	syncTask := NewSyncSourcesTask(s.seeds, s.sourceRepo)
	if err := s.EnqueueTask(syncTask); err != nil {
		slog.Warn("Failed to enqueue SyncSourcesTask", "error", err)
	}

	s.enqueueIngestTasks()

	if err := s.EnqueuePrune(); err != nil {
		slog.Warn("Failed to enqueue PruneContentTask", "error", err)
	}
}

func (s *Scheduler) enqueueIngestTasks() {
	for _, category := range feed.Categories() {
		if err := s.EnqueueIngest(category); err != nil {
			slog.Warn("Failed to enqueue IngestCategoryTask", "category", string(category), "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 15*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "subject", task.GetSubject(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
