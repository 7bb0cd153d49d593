package feed

import (
	"html"
	"regexp"
)

// tagPattern removes markup with a non-greedy sweep. This is deliberately not
// an HTML parse; malformed markup may leave fragments behind.
var tagPattern = regexp.MustCompile(`<.*?>`)

type Sanitizer struct{}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Run strips markup tags from raw text and decodes HTML entities.
func (s *Sanitizer) Run(raw string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(raw, ""))
}
