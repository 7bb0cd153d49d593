package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []Entry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, p.normalizeEntry(item))
	}

	return metadata, entries, nil
}

func (p *Parser) normalizeEntry(item *gofeed.Item) Entry {
	entry := Entry{
		GUID:        cmp.Or(item.GUID, item.Link),
		Link:        item.Link,
		Title:       item.Title,
		Description: item.Description,
		Content:     item.Content,
		Published:   item.Published,
		Updated:     item.Updated,
	}

	for _, enclosure := range item.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}
		entry.Enclosures = append(entry.Enclosures, MediaObject{
			URL:  enclosure.URL,
			Type: enclosure.Type,
		})
	}

	// gofeed flattens <link> elements to bare URLs with no type attribute, so
	// only links that point at an image by extension become candidates.
	for _, link := range item.Links {
		if hasImageExtension(link) {
			entry.Links = append(entry.Links, MediaObject{URL: link})
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		entry.Image = &MediaObject{URL: item.Image.URL}
	}

	if item.ITunesExt != nil && item.ITunesExt.Image != "" {
		entry.Thumbnail = append(entry.Thumbnail, MediaObject{URL: item.ITunesExt.Image})
	}

	if media, ok := item.Extensions["media"]; ok {
		entry.MediaContent = mediaObjects(media["content"])
		entry.MediaThumbnail = mediaObjects(media["thumbnail"])
		for _, group := range media["group"] {
			entry.MediaGroup = append(entry.MediaGroup, mediaObjects(group.Children["content"])...)
		}
	}

	return entry
}

// mediaObjects converts media RSS extension elements into media descriptors,
// reading the url, type and width attributes. Missing or non-numeric widths
// become 0.
func mediaObjects(extensions []ext.Extension) []MediaObject {
	var objects []MediaObject
	for _, extension := range extensions {
		mediaURL := extension.Attrs["url"]
		if mediaURL == "" {
			continue
		}

		width := 0
		if declared, ok := extension.Attrs["width"]; ok {
			if parsed, err := strconv.Atoi(declared); err == nil {
				width = parsed
			}
		}

		objects = append(objects, MediaObject{
			URL:   mediaURL,
			Type:  extension.Attrs["type"],
			Width: width,
		})
	}
	return objects
}

func hasImageExtension(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	switch strings.ToLower(path.Ext(parsed.Path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
