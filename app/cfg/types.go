package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// HTTP server configuration
	Port         string
	APIAccessKey string

	// Scheduler configuration
	WorkerCount    int
	IngestInterval int // seconds
	PruneInterval  int // seconds

	// Ingestion tunables
	SourcesFile        string
	MaxNewItemsPerFeed int
	MinImageWidth      int
	ShortCircuitWidth  int
	RetentionDays      int
	FeedTimeout        int // seconds
	ImageTimeout       int // seconds

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
