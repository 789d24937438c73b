package models

import (
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// NewID generates a ULID primary key. ULIDs sort lexicographically by
// creation time, which keeps recreated list rows in insertion order even
// before an explicit ORDER BY kicks in.
func NewID() string {
	return ulid.Make().String()
}

// AllModels returns all models for migration
// Note: Website must be migrated first as content models depend on it
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Client{},
		&Website{},
		&WebsiteFeature{},
		&ExternalLinkGroup{},
		&ExternalLink{},
		&FaqGroup{},
		&Faq{},
		&Article{},
		&ArticleLocalization{},
		&ArticleTag{},
		&Form{},
		&FormField{},
		&FormSubmission{},
		&FormSubmissionField{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
