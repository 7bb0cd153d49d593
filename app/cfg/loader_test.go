package cfg

import (
	"os"
	"testing"
)

func loadWithArgs(t *testing.T, args ...string) *Cfg {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"rss-harvester"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected configuration, got nil")
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := loadWithArgs(t)

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got: %q", cfg.Port)
	}
	if cfg.DBPath != "./rss-harvester.db" {
		t.Errorf("Expected default db path, got: %q", cfg.DBPath)
	}
	if cfg.MaxNewItemsPerFeed != 3 {
		t.Errorf("Expected default max new items 3, got: %d", cfg.MaxNewItemsPerFeed)
	}
	if cfg.MinImageWidth != 200 {
		t.Errorf("Expected default min image width 200, got: %d", cfg.MinImageWidth)
	}
	if cfg.ShortCircuitWidth != 400 {
		t.Errorf("Expected default short-circuit width 400, got: %d", cfg.ShortCircuitWidth)
	}
	if cfg.RetentionDays != 30 {
		t.Errorf("Expected default retention of 30 days, got: %d", cfg.RetentionDays)
	}
	if cfg.FeedTimeout != 30 {
		t.Errorf("Expected default feed timeout 30s, got: %d", cfg.FeedTimeout)
	}
	if cfg.Debug {
		t.Error("Expected debug disabled by default")
	}
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	cfg := loadWithArgs(t, "--port", "9090", "--max-new-items", "10", "--debug")

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got: %q", cfg.Port)
	}
	if cfg.MaxNewItemsPerFeed != 10 {
		t.Errorf("Expected max new items 10, got: %d", cfg.MaxNewItemsPerFeed)
	}
	if !cfg.Debug {
		t.Error("Expected debug enabled")
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("RETENTION_DAYS", "7")

	cfg := loadWithArgs(t)

	if cfg.Port != "7070" {
		t.Errorf("Expected port from environment, got: %q", cfg.Port)
	}
	if cfg.RetentionDays != 7 {
		t.Errorf("Expected retention from environment, got: %d", cfg.RetentionDays)
	}
}

func TestGetReturnsLoadedConfiguration(t *testing.T) {
	cfg := loadWithArgs(t)

	if Get() != cfg {
		t.Error("Expected Get to return the loaded configuration")
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("Expected a non-empty version string")
	}
}
