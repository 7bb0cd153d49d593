package feed

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yml
var defaultSources []byte

// Source is one seed record for the feed registry. Seeds are upserted into
// the database at startup; the database stays the authority for the active
// flag and fetch bookkeeping afterwards.
type Source struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Category Category `yaml:"category"`
	Disabled bool     `yaml:"disabled"`
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads feed source seeds from the given YAML file, or from the
// embedded default list when path is empty.
func LoadSources(path string) ([]Source, error) {
	data := defaultSources
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sources file: %w", err)
		}
		data = fileData
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources YAML: %w", err)
	}

	sources := make([]Source, 0, len(file.Sources))
	for i, source := range file.Sources {
		if source.URL == "" {
			return nil, fmt.Errorf("source at index %d has no URL", i)
		}
		if _, err := ParseCategory(string(source.Category)); err != nil {
			return nil, fmt.Errorf("source %s: %w", source.URL, err)
		}
		if source.Name == "" {
			source.Name = nameFromURL(source.URL)
		}
		sources = append(sources, source)
	}

	return sources, nil
}

// nameFromURL derives a display name from the feed URL host.
func nameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
