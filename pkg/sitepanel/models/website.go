package models

import (
	"time"

	"gorm.io/gorm"
)

// DisplayMode selects how a website's FAQ or external-link list is presented:
// a flat list or named group buckets. It is a persisted user choice, not
// derived from the data shape, and toggling it never migrates rows.
type DisplayMode int

const (
	DisplayModeSingle DisplayMode = 0
	DisplayModeGroup  DisplayMode = 1
)

// Website status values
const (
	WebsiteStatusActive   = "active"
	WebsiteStatusInactive = "inactive"
)

// Website represents a tenant: a managed site whose content (links, FAQs,
// articles, forms) is isolated from every other website.
type Website struct {
	ID                      string         `gorm:"primarykey;size:26" json:"id"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
	Name                    string         `gorm:"not null" json:"name"`
	URL                     string         `json:"url"`
	FaqDisplayMode          DisplayMode    `gorm:"default:0" json:"faq_display_mode"`
	ExternalLinkDisplayMode DisplayMode    `gorm:"default:0" json:"external_link_display_mode"`
	DeployedAt              *time.Time     `json:"deployed_at"`
	OrderNumber             string         `json:"order_number"`

	// Relationships
	Clients  []Client         `gorm:"many2many:client_has_websites;" json:"clients,omitempty"`
	Features []WebsiteFeature `gorm:"many2many:website_has_features;joinForeignKey:WebsiteID;joinReferences:FeatureID" json:"features,omitempty"`
}

func (w *Website) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = NewID()
	}
	return nil
}

// ExpiredAt returns the end of the website's deployment year.
func (w *Website) ExpiredAt() *time.Time {
	if w.DeployedAt == nil {
		return nil
	}
	t := w.DeployedAt.AddDate(1, 0, 0)
	return &t
}

// Status reports whether the website is still within its deployment year.
func (w *Website) Status() string {
	expired := w.ExpiredAt()
	if expired == nil || time.Now().After(*expired) {
		return WebsiteStatusInactive
	}
	return WebsiteStatusActive
}
