package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var ErrEmptyDate = errors.New("entry has no publication date")

// Offsets for non-standard US timezone abbreviations that feeds in the wild
// still emit and standard layouts refuse to resolve.
var tzAbbreviations = map[string]string{
	"PDT": "-0700",
	"PST": "-0800",
}

// ParseDate resolves an entry's publication timestamp, preferring the
// published field over updated. Entries without a parseable date are rejected,
// never stored with a sentinel.
func ParseDate(published, updated string) (time.Time, error) {
	value := strings.TrimSpace(published)
	if value == "" {
		value = strings.TrimSpace(updated)
	}
	if value == "" {
		return time.Time{}, ErrEmptyDate
	}

	for abbreviation, offset := range tzAbbreviations {
		if strings.HasSuffix(value, abbreviation) {
			value = strings.TrimSuffix(value, abbreviation) + offset
			break
		}
	}

	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", value, err)
	}

	return parsed.UTC(), nil
}
