package models

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a customer account. Each client is backed by exactly one
// User (the login) and is assigned zero or more websites it may edit.
type Client struct {
	ID        string         `gorm:"primarykey;size:26" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Contact   string         `gorm:"not null" json:"contact"`
	UserID    string         `gorm:"size:26;not null;index" json:"user_id"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Websites []Website `gorm:"many2many:client_has_websites;" json:"websites,omitempty"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// HasWebsite reports whether the website is assigned to this client.
func (c *Client) HasWebsite(db *gorm.DB, websiteID string) bool {
	var count int64
	db.Table("client_has_websites").
		Where("client_id = ? AND website_id = ?", c.ID, websiteID).
		Count(&count)
	return count > 0
}
