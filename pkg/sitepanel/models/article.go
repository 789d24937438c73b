package models

import (
	"time"

	"gorm.io/gorm"
)

// ArticleStatus values
const (
	ArticleStatusDraft     = 0
	ArticleStatusPublished = 1
)

// Article is a blog post belonging to a website. The translatable content
// lives in ArticleLocalization rows, one per language.
type Article struct {
	ID          string         `gorm:"primarykey;size:26" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	WebsiteID   string         `gorm:"size:26;not null;index" json:"website_id"`
	Status      int            `gorm:"default:0" json:"status"`
	CreatedByID *string        `gorm:"size:26" json:"created_by_id"`
	UpdatedByID *string        `gorm:"size:26" json:"updated_by_id"`

	// Relationships
	Localizations []ArticleLocalization `gorm:"foreignKey:ArticleID" json:"localizations,omitempty"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}

// ArticleLocalization holds one language's rendition of an article. Content
// and Tags are stored as opaque JSON produced by the editor.
type ArticleLocalization struct {
	ID        string `gorm:"primarykey;size:26" json:"id"`
	ArticleID string `gorm:"size:26;not null;index" json:"article_id"`
	Lang      string `gorm:"size:5;not null" json:"lang"`
	Title     string `gorm:"not null" json:"title"`
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`
	Content   string `json:"content"`
	Tags      string `json:"tags"`
}

func (l *ArticleLocalization) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = NewID()
	}
	return nil
}

// ArticleTag is a per-website tag vocabulary entry.
type ArticleTag struct {
	ID        string `gorm:"primarykey;size:26" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	WebsiteID string `gorm:"size:26;not null;index" json:"website_id"`
}

func (t *ArticleTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}
