package models

import (
	"time"

	"gorm.io/gorm"
)

// ExternalLinkGroup is a named bucket of external links for one website.
// Index is the group's display order among the website's groups.
//
// Groups and their links are hard-deleted: bulk reconciliation replaces the
// whole set on every autosave, and soft-deleted rows would pile up.
type ExternalLinkGroup struct {
	ID        string    `gorm:"primarykey;size:26" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	WebsiteID string    `gorm:"size:26;not null;index" json:"website_id"`
	Name      string    `gorm:"not null" json:"name"`
	Index     int       `gorm:"column:idx;not null" json:"index"`

	// Relationships
	Links []ExternalLink `gorm:"foreignKey:GroupID" json:"links,omitempty"`
}

func (g *ExternalLinkGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = NewID()
	}
	return nil
}

// ExternalLink is one entry of a website's external-link list.
//
// Index orders ungrouped links (and serves as a legacy fallback order inside
// a group); GroupIndex is the authoritative order within a group. GroupIndex
// is NOT NULL, so ungrouped links always carry 0 there.
type ExternalLink struct {
	ID         string    `gorm:"primarykey;size:26" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	WebsiteID  string    `gorm:"size:26;not null;index" json:"website_id"`
	GroupID    *string   `gorm:"size:26;index" json:"group_id"`
	Label      string    `json:"label"`
	URL        string    `gorm:"size:2048" json:"url"`
	Index      int       `gorm:"column:idx;not null" json:"index"`
	GroupIndex int       `gorm:"not null;default:0" json:"group_index"`

	// Relationships
	Group *ExternalLinkGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (l *ExternalLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = NewID()
	}
	return nil
}
