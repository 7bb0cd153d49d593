package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSourcesEmbeddedDefault(t *testing.T) {
	sources, err := LoadSources("")
	if err != nil {
		t.Fatalf("Expected embedded sources to load, got: %v", err)
	}
	if len(sources) == 0 {
		t.Fatal("Expected embedded source list to be non-empty")
	}

	for _, source := range sources {
		if source.URL == "" {
			t.Errorf("Source %q has empty URL", source.Name)
		}
		if source.Name == "" {
			t.Errorf("Source %q has empty name", source.URL)
		}
		if _, err := ParseCategory(string(source.Category)); err != nil {
			t.Errorf("Source %q: %v", source.URL, err)
		}
	}
}

func TestLoadSourcesFromFile(t *testing.T) {
	content := `sources:
  - name: Example Blog
    url: https://example.com/feed.xml
    category: python
  - url: https://www.another.org/rss
    category: ai
    disabled: true
`
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got: %d", len(sources))
	}

	if sources[0].Name != "Example Blog" {
		t.Errorf("Expected explicit name kept, got: %q", sources[0].Name)
	}
	if sources[0].Category != CategoryPython {
		t.Errorf("Expected python category, got: %q", sources[0].Category)
	}

	// name defaults to the URL host without the www prefix
	if sources[1].Name != "another.org" {
		t.Errorf("Expected derived name 'another.org', got: %q", sources[1].Name)
	}
	if !sources[1].Disabled {
		t.Error("Expected second source to be disabled")
	}
}

func TestLoadSourcesUnknownCategory(t *testing.T) {
	content := `sources:
  - url: https://example.com/feed.xml
    category: gardening
`
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadSources(path); err == nil {
		t.Fatal("Expected error for unknown category")
	}
}

func TestLoadSourcesMissingURL(t *testing.T) {
	content := `sources:
  - name: Broken
    category: general
`
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadSources(path); err == nil {
		t.Fatal("Expected error for source without URL")
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestParseCategoryRoundTrip(t *testing.T) {
	for _, category := range Categories() {
		parsed, err := ParseCategory(string(category))
		if err != nil {
			t.Errorf("ParseCategory(%q) failed: %v", category, err)
		}
		if parsed != category {
			t.Errorf("ParseCategory(%q) = %q", category, parsed)
		}
	}

	if _, err := ParseCategory("not-a-category"); err == nil {
		t.Error("Expected error for unknown category")
	}
}
