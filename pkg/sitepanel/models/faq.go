package models

import (
	"time"

	"gorm.io/gorm"
)

// FaqGroup is a named bucket of FAQ entries for one website, ordered by
// Index. Same replace-on-save lifecycle as ExternalLinkGroup, so no soft
// delete.
type FaqGroup struct {
	ID        string    `gorm:"primarykey;size:26" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	WebsiteID string    `gorm:"size:26;not null;index" json:"website_id"`
	Name      string    `gorm:"not null" json:"name"`
	Index     int       `gorm:"column:idx;not null" json:"index"`

	// Relationships
	Faqs []Faq `gorm:"foreignKey:GroupID" json:"faqs,omitempty"`
}

func (g *FaqGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = NewID()
	}
	return nil
}

// Faq is one question/answer entry of a website's FAQ list. Ordering fields
// behave exactly like ExternalLink's: Index orders the flat list, GroupIndex
// orders within a group and stays 0 for ungrouped rows.
type Faq struct {
	ID         string    `gorm:"primarykey;size:26" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	WebsiteID  string    `gorm:"size:26;not null;index" json:"website_id"`
	GroupID    *string   `gorm:"size:26;index" json:"group_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Index      int       `gorm:"column:idx;not null" json:"index"`
	GroupIndex int       `gorm:"not null;default:0" json:"group_index"`

	// Relationships
	Group *FaqGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (f *Faq) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}
