package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./rss-harvester.db" description:"Path to the SQLite database file"`

	// HTTP server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Scheduler configuration
	WorkerCount    int `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for ingestion tasks"`
	IngestInterval int `long:"ingest-interval" env:"INGEST_INTERVAL" default:"1800" description:"Interval between ingestion runs in seconds"`
	PruneInterval  int `long:"prune-interval" env:"PRUNE_INTERVAL" default:"86400" description:"Interval between retention pruning runs in seconds"`

	// Ingestion tunables
	SourcesFile        string `long:"sources-file" env:"SOURCES_FILE" description:"Path to the feed sources YAML file (embedded default when empty)"`
	MaxNewItemsPerFeed int    `long:"max-new-items" env:"MAX_NEW_ITEMS_PER_FEED" default:"3" description:"Maximum number of new items stored per feed per run"`
	MinImageWidth      int    `long:"min-image-width" env:"MIN_IMAGE_WIDTH" default:"200" description:"Minimum validated image width in pixels"`
	ShortCircuitWidth  int    `long:"short-circuit-width" env:"SHORT_CIRCUIT_WIDTH" default:"400" description:"Image width in pixels at which candidate scanning stops early"`
	RetentionDays      int    `long:"retention-days" env:"RETENTION_DAYS" default:"30" description:"Days content is kept before pruning"`
	FeedTimeout        int    `long:"feed-timeout" env:"FEED_TIMEOUT" default:"30" description:"Feed fetch timeout in seconds"`
	ImageTimeout       int    `long:"image-timeout" env:"IMAGE_TIMEOUT" default:"5" description:"Image probe timeout in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"RSS Harvester/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:             raw.DBPath,
		Port:               raw.Port,
		APIAccessKey:       raw.APIAccessKey,
		WorkerCount:        raw.WorkerCount,
		IngestInterval:     raw.IngestInterval,
		PruneInterval:      raw.PruneInterval,
		SourcesFile:        raw.SourcesFile,
		MaxNewItemsPerFeed: raw.MaxNewItemsPerFeed,
		MinImageWidth:      raw.MinImageWidth,
		ShortCircuitWidth:  raw.ShortCircuitWidth,
		RetentionDays:      raw.RetentionDays,
		FeedTimeout:        raw.FeedTimeout,
		ImageTimeout:       raw.ImageTimeout,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
