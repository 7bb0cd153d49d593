package feed

import "fmt"

// Category is the closed set of content partitions. Each category owns its
// own content table and its own list of feed sources.
type Category string

const (
	CategoryGeneral          Category = "general"
	CategoryPython           Category = "python"
	CategoryCyberSecurity    Category = "cybersecurity"
	CategorySoftwareDev      Category = "software_dev"
	CategoryUiUx             Category = "ui_ux"
	CategoryMobilePc         Category = "mobile_pc"
	CategoryJobs             Category = "jobs"
	CategoryCrypto           Category = "crypto"
	CategoryAI               Category = "ai"
	CategoryMedicalNews      Category = "medical_news"
	CategoryAIMedicalImaging Category = "ai_medical_imaging"
)

func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryPython,
		CategoryCyberSecurity,
		CategorySoftwareDev,
		CategoryUiUx,
		CategoryMobilePc,
		CategoryJobs,
		CategoryCrypto,
		CategoryAI,
		CategoryMedicalNews,
		CategoryAIMedicalImaging,
	}
}

func ParseCategory(value string) (Category, error) {
	for _, category := range Categories() {
		if string(category) == value {
			return category, nil
		}
	}
	return "", fmt.Errorf("unknown content category: %q", value)
}

// Metadata contains channel-level metadata of a parsed feed.
type Metadata struct {
	Title       string
	Link        string
	Description string
}

// MediaObject is a single media descriptor attached to an entry. Width is 0
// when the feed does not declare one.
type MediaObject struct {
	URL   string
	Type  string
	Width int
}

// Entry is a normalized feed entry. Date fields keep the raw strings from the
// feed document so date normalization stays under our control.
type Entry struct {
	GUID        string
	Link        string
	Title       string
	Description string
	Summary     string
	Content     string
	Published   string
	Updated     string

	MediaContent   []MediaObject
	Enclosures     []MediaObject
	Links          []MediaObject
	MediaGroup     []MediaObject
	Image          *MediaObject
	MediaThumbnail []MediaObject
	Thumbnail      []MediaObject
}

type mediaField struct {
	Name   string
	List   []MediaObject
	Single *MediaObject
}

// mediaFields returns the entry's media descriptors in scan priority order:
// full-size representations first, thumbnails last.
func (e Entry) mediaFields() []mediaField {
	return []mediaField{
		{Name: "media_content", List: e.MediaContent},
		{Name: "enclosures", List: e.Enclosures},
		{Name: "links", List: e.Links},
		{Name: "media_group", List: e.MediaGroup},
		{Name: "image", Single: e.Image},
		{Name: "media_thumbnail", List: e.MediaThumbnail},
		{Name: "thumbnail", List: e.Thumbnail},
	}
}

// htmlFields returns the entry's textual fields in image fallback scan order.
func (e Entry) htmlFields() []string {
	return []string{e.Content, e.Summary, e.Description}
}
