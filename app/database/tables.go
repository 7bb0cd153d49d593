package database

import (
	"fmt"

	"github.com/lysyi3m/rss-harvester/app/feed"
)

// contentTable maps a category to its content table. The mapping is a closed
// switch so an unknown category is a hard configuration error, never a
// dynamically derived table name.
func contentTable(category feed.Category) (string, error) {
	switch category {
	case feed.CategoryGeneral:
		return "content_general", nil
	case feed.CategoryPython:
		return "content_python", nil
	case feed.CategoryCyberSecurity:
		return "content_cybersecurity", nil
	case feed.CategorySoftwareDev:
		return "content_software_dev", nil
	case feed.CategoryUiUx:
		return "content_ui_ux", nil
	case feed.CategoryMobilePc:
		return "content_mobile_pc", nil
	case feed.CategoryJobs:
		return "content_jobs", nil
	case feed.CategoryCrypto:
		return "content_crypto", nil
	case feed.CategoryAI:
		return "content_ai", nil
	case feed.CategoryMedicalNews:
		return "content_medical_news", nil
	case feed.CategoryAIMedicalImaging:
		return "content_ai_medical_imaging", nil
	default:
		return "", fmt.Errorf("unknown content category: %q", category)
	}
}
