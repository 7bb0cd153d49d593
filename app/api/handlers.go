package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/rss-harvester/app/cfg"
	"github.com/lysyi3m/rss-harvester/app/database"
	"github.com/lysyi3m/rss-harvester/app/feed"
	"github.com/lysyi3m/rss-harvester/app/tasks"
)

func NewHandler(sourceRepo database.SourceRepository, contentRepo database.ContentRepository,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		sourceRepo:  sourceRepo,
		contentRepo: contentRepo,
		scheduler:   scheduler,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": cfg.Get().Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	counts := make(map[string]int, len(feed.Categories()))
	total := 0
	for _, category := range feed.Categories() {
		count, err := h.contentRepo.Count(category)
		if err != nil {
			slog.Error("Database error", "operation", "count_content", "category", string(category), "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		counts[string(category)] = count
		total += count
	}

	active, inactive, err := h.sourceRepo.GetSourceStats()
	if err != nil {
		slog.Error("Database error", "operation", "source_stats", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": gin.H{
			"by_category": counts,
			"total":       total,
		},
		"sources": gin.H{
			"active":   active,
			"inactive": inactive,
		},
	})
}

func (h *Handler) ListSources(c *gin.Context) {
	category := c.Query("category")
	if category != "" {
		if _, err := feed.ParseCategory(category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sources, err := h.sourceRepo.GetSources(category)
	if err != nil {
		slog.Error("Database error", "operation", "list_sources", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]sourceResponse, 0, len(sources))
	for _, source := range sources {
		item := sourceResponse{
			ID:        source.ID,
			Name:      source.Name,
			URL:       source.URL,
			Category:  string(source.Category),
			IsActive:  source.IsActive,
			LastError: source.LastError,
		}
		if source.LastFetchedAt != nil {
			fetchedAt := source.LastFetchedAt.UTC().Format(time.RFC3339)
			item.LastFetchedAt = &fetchedAt
		}
		response = append(response, item)
	}

	c.JSON(http.StatusOK, gin.H{"sources": response})
}

func (h *Handler) TriggerIngest(c *gin.Context) {
	category, err := feed.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.scheduler.EnqueueIngest(category); err != nil {
		slog.Error("Failed to enqueue ingestion", "category", string(category), "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue ingestion task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":  "ingestion scheduled",
		"category": string(category),
	})
}

func (h *Handler) TriggerPrune(c *gin.Context) {
	if err := h.scheduler.EnqueuePrune(); err != nil {
		slog.Error("Failed to enqueue pruning", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue pruning task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "pruning scheduled"})
}
