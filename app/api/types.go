package api

import (
	"github.com/lysyi3m/rss-harvester/app/database"
	"github.com/lysyi3m/rss-harvester/app/tasks"
)

type Handler struct {
	sourceRepo  database.SourceRepository
	contentRepo database.ContentRepository
	scheduler   tasks.TaskSchedulerInterface
}

type sourceResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	URL           string  `json:"url"`
	Category      string  `json:"category"`
	IsActive      bool    `json:"is_active"`
	LastFetchedAt *string `json:"last_fetched_at"`
	LastError     string  `json:"last_error,omitempty"`
}
