package feed

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxProbeBytes caps how much of an image body is read before decoding the
// header, guarding against decompression bombs.
const maxProbeBytes = 8 << 20

// maxHTMLImagesPerField bounds how many <img> URLs are probed per HTML field
// during the fallback scan.
const maxHTMLImagesPerField = 3

// skipURLPatterns marks image URLs that are almost certainly icons, badges or
// tracking pixels rather than article imagery.
var skipURLPatterns = []string{"icon", "logo", "badge", "button", "tracking", "1x1"}

// ImageResolver finds the best-quality image URL for a feed entry. It scans
// the entry's media descriptors in priority order, confirms candidate widths
// by fetching and decoding the image header, and falls back to <img> tags in
// the entry's HTML when no media field qualifies.
type ImageResolver struct {
	httpClient        *http.Client
	userAgent         string
	probeTimeout      time.Duration
	minWidth          int
	shortCircuitWidth int
}

func NewImageResolver(httpClient *http.Client, userAgent string, probeTimeout time.Duration, minWidth, shortCircuitWidth int) *ImageResolver {
	return &ImageResolver{
		httpClient:        httpClient,
		userAgent:         userAgent,
		probeTimeout:      probeTimeout,
		minWidth:          minWidth,
		shortCircuitWidth: shortCircuitWidth,
	}
}

// Run returns the best image URL for the entry, or "" when nothing qualifies.
// Probe failures discard the candidate and never abort the scan.
func (r *ImageResolver) Run(ctx context.Context, entry Entry) string {
	best := ""
	bestWidth := 0

	for _, field := range entry.mediaFields() {
		if field.Single != nil {
			width := r.probe(ctx, field.Single.URL)
			if width > bestWidth {
				bestWidth = width
				best = field.Single.URL
			}
			if best != "" && bestWidth >= r.shortCircuitWidth {
				return best
			}
			continue
		}

		for _, media := range field.List {
			if media.URL == "" {
				continue
			}
			if media.Type != "" && !strings.HasPrefix(media.Type, "image") {
				continue
			}

			width := media.Width
			// A larger declared width is worth confirming; a width-less
			// candidate is only probed while we have nothing yet.
			if width <= bestWidth && !(best == "" && width == 0) {
				continue
			}

			actual := r.probe(ctx, media.URL)
			if actual == 0 {
				continue
			}
			if width == 0 {
				width = actual
			}
			if width > bestWidth {
				bestWidth = width
				best = media.URL
			}
			if bestWidth >= r.shortCircuitWidth {
				return best
			}
		}
	}

	if best != "" {
		return best
	}

	for _, content := range entry.htmlFields() {
		if content == "" {
			continue
		}

		urls := extractImageURLs(content)
		if len(urls) > maxHTMLImagesPerField {
			urls = urls[:maxHTMLImagesPerField]
		}

		for _, imageURL := range urls {
			if skipImageURL(imageURL) {
				continue
			}
			width := r.probe(ctx, imageURL)
			if width > bestWidth {
				bestWidth = width
				best = imageURL
			}
			if best != "" && bestWidth >= r.shortCircuitWidth {
				return best
			}
		}
	}

	return best
}

// probe fetches the URL and decodes the image header, returning the actual
// pixel width. Returns 0 on any fetch or decode failure, and for images
// narrower than the configured minimum.
func (r *ImageResolver) probe(ctx context.Context, imageURL string) int {
	if imageURL == "" {
		return 0
	}

	probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, imageURL, nil)
	if err != nil {
		return 0
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		slog.Debug("Image probe failed", "url", imageURL, "error", err)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}

	config, _, err := image.DecodeConfig(io.LimitReader(resp.Body, maxProbeBytes))
	if err != nil {
		slog.Debug("Image decode failed", "url", imageURL, "error", err)
		return 0
	}

	if config.Width < r.minWidth {
		return 0
	}

	return config.Width
}

func extractImageURLs(htmlContent string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	var urls []string
	doc.Find("img").Each(func(_ int, selection *goquery.Selection) {
		if src, ok := selection.Attr("src"); ok && src != "" {
			urls = append(urls, src)
		}
	})
	return urls
}

func skipImageURL(imageURL string) bool {
	lowered := strings.ToLower(imageURL)
	for _, pattern := range skipURLPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}
