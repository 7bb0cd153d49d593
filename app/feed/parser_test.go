package feed

import (
	"testing"
)

const rssWithMedia = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Tech Digest</title>
    <link>https://example.com</link>
    <description>Daily technology news</description>
    <item>
      <title>First article</title>
      <link>https://example.com/first</link>
      <guid>first-guid</guid>
      <description>A short summary</description>
      <pubDate>Mon, 02 Jan 2023 10:00:00 +0000</pubDate>
      <media:content url="https://example.com/hero.jpg" type="image/jpeg" width="800"/>
      <media:thumbnail url="https://example.com/thumb.jpg" width="150"/>
      <enclosure url="https://example.com/photo.png" type="image/png" length="1024"/>
    </item>
    <item>
      <title>Second article</title>
      <link>https://example.com/second</link>
      <description>Another summary</description>
    </item>
  </channel>
</rss>`

func TestParserChannelMetadata(t *testing.T) {
	parser := NewParser()

	metadata, _, err := parser.Run([]byte(rssWithMedia))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Tech Digest" {
		t.Errorf("Expected channel title 'Tech Digest', got: %q", metadata.Title)
	}
	if metadata.Link != "https://example.com" {
		t.Errorf("Expected channel link, got: %q", metadata.Link)
	}
}

func TestParserMediaExtensions(t *testing.T) {
	parser := NewParser()

	_, entries, err := parser.Run([]byte(rssWithMedia))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	entry := entries[0]
	if len(entry.MediaContent) != 1 {
		t.Fatalf("Expected 1 media content descriptor, got: %d", len(entry.MediaContent))
	}
	if entry.MediaContent[0].URL != "https://example.com/hero.jpg" {
		t.Errorf("Unexpected media content URL: %q", entry.MediaContent[0].URL)
	}
	if entry.MediaContent[0].Width != 800 {
		t.Errorf("Expected declared width 800, got: %d", entry.MediaContent[0].Width)
	}
	if entry.MediaContent[0].Type != "image/jpeg" {
		t.Errorf("Expected type image/jpeg, got: %q", entry.MediaContent[0].Type)
	}

	if len(entry.MediaThumbnail) != 1 || entry.MediaThumbnail[0].Width != 150 {
		t.Errorf("Expected media thumbnail with width 150, got: %+v", entry.MediaThumbnail)
	}

	if len(entry.Enclosures) != 1 || entry.Enclosures[0].Type != "image/png" {
		t.Errorf("Expected image/png enclosure, got: %+v", entry.Enclosures)
	}
}

func TestParserGUIDFallsBackToLink(t *testing.T) {
	parser := NewParser()

	_, entries, err := parser.Run([]byte(rssWithMedia))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if entries[0].GUID != "first-guid" {
		t.Errorf("Expected explicit guid, got: %q", entries[0].GUID)
	}
	if entries[1].GUID != "https://example.com/second" {
		t.Errorf("Expected link as guid fallback, got: %q", entries[1].GUID)
	}
}

func TestParserKeepsRawDates(t *testing.T) {
	parser := NewParser()

	_, entries, err := parser.Run([]byte(rssWithMedia))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if entries[0].Published != "Mon, 02 Jan 2023 10:00:00 +0000" {
		t.Errorf("Expected raw published string preserved, got: %q", entries[0].Published)
	}
	if entries[1].Published != "" {
		t.Errorf("Expected empty published for dateless entry, got: %q", entries[1].Published)
	}
}

func TestParserMediaGroup(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Video Feed</title>
    <item>
      <title>Clip</title>
      <link>https://example.com/clip</link>
      <media:group>
        <media:content url="https://example.com/frame-a.jpg" type="image/jpeg" width="640"/>
        <media:content url="https://example.com/frame-b.jpg" type="image/jpeg"/>
      </media:group>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	_, entries, err := parser.Run([]byte(doc))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries[0].MediaGroup) != 2 {
		t.Fatalf("Expected 2 grouped descriptors, got: %d", len(entries[0].MediaGroup))
	}
	if entries[0].MediaGroup[0].Width != 640 {
		t.Errorf("Expected width 640, got: %d", entries[0].MediaGroup[0].Width)
	}
	if entries[0].MediaGroup[1].Width != 0 {
		t.Errorf("Expected missing width to become 0, got: %d", entries[0].MediaGroup[1].Width)
	}
}

func TestParserFiltersNonImageLinks(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <entry>
    <title>Post</title>
    <id>atom-post</id>
    <link rel="alternate" href="https://example.com/post"/>
    <link rel="enclosure" href="https://example.com/picture.png"/>
  </entry>
</feed>`

	parser := NewParser()
	_, entries, err := parser.Run([]byte(doc))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries[0].Links) != 1 {
		t.Fatalf("Expected only the image link kept, got: %+v", entries[0].Links)
	}
	if entries[0].Links[0].URL != "https://example.com/picture.png" {
		t.Errorf("Unexpected link URL: %q", entries[0].Links[0].URL)
	}
}

func TestParserInvalidDocument(t *testing.T) {
	parser := NewParser()

	if _, _, err := parser.Run([]byte("this is not a feed")); err == nil {
		t.Fatal("Expected error for invalid document")
	}
}

func TestHasImageExtension(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/a.jpg":          true,
		"https://example.com/a.JPEG":         true,
		"https://example.com/a.png?w=200":    true,
		"https://example.com/a.webp":         true,
		"https://example.com/post":           false,
		"https://example.com/archive.tar.gz": false,
	}

	for rawURL, expected := range cases {
		if got := hasImageExtension(rawURL); got != expected {
			t.Errorf("hasImageExtension(%q) = %v, expected %v", rawURL, got, expected)
		}
	}
}
