package models

// Website feature identifiers
const (
	FeatureBlog         = "blog"
	FeatureExternalLink = "external-link"
	FeatureFaq          = "faq"
	FeatureForm         = "form"
)

// WebsiteFeature is a toggleable capability (blog, external links, FAQ,
// forms) that admins assign to websites. The rows are seeded at startup;
// the ID is the feature slug.
type WebsiteFeature struct {
	ID   string `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}
