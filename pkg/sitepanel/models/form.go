package models

import (
	"time"

	"gorm.io/gorm"
)

// FormField types
const (
	FieldTypeShortText      = 0
	FieldTypeLongText       = 1
	FieldTypeMultipleChoice = 2
	FieldTypeCheckbox       = 3
	FieldTypeDropdown       = 4
	FieldTypeNumber         = 5
	FieldTypeEmail          = 6
	FieldTypePhone          = 7
	FieldTypeDate           = 8
	FieldTypeTime           = 9
)

// Form is a submittable form belonging to a website.
type Form struct {
	ID        string         `gorm:"primarykey;size:26" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	WebsiteID string         `gorm:"size:26;not null;index" json:"website_id"`
	Name      string         `json:"name"`

	// Relationships
	Fields      []FormField      `gorm:"foreignKey:FormID" json:"fields,omitempty"`
	Submissions []FormSubmission `gorm:"foreignKey:FormID" json:"submissions,omitempty"`
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}

// FormField is one input of a form. Index is its display order; the min/max
// columns only apply to number and digit-constrained types.
type FormField struct {
	ID             string    `gorm:"primarykey;size:26" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	FormID         string    `gorm:"size:26;not null;index" json:"form_id"`
	Type           int       `gorm:"not null" json:"type"`
	IsRequired     bool      `gorm:"not null" json:"is_required"`
	Index          int       `gorm:"column:idx;not null" json:"index"`
	MinValue       float64   `gorm:"default:0" json:"min_value"`
	MaxValue       float64   `gorm:"default:0" json:"max_value"`
	MinDigits      int       `gorm:"default:0" json:"min_digits"`
	MaxDigits      int       `gorm:"default:0" json:"max_digits"`
	IsRandomized   bool      `gorm:"default:false" json:"is_randomized"`
	IsMultiple     bool      `gorm:"default:false" json:"is_multiple"`
	UseCountryCode bool      `gorm:"default:false" json:"use_country_code"`
}

func (f *FormField) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}

// FormSubmission is one visitor submission of a form.
type FormSubmission struct {
	ID        string    `gorm:"primarykey;size:26" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FormID    string    `gorm:"size:26;not null;index" json:"form_id"`
	IP        string    `gorm:"size:15" json:"ip"`

	// Relationships
	Fields []FormSubmissionField `gorm:"foreignKey:SubmissionID" json:"fields,omitempty"`
}

func (s *FormSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}

// FormSubmissionField is one submitted value, keyed by submission and field.
// Value is JSON so checkbox/multi-choice answers can carry arrays.
type FormSubmissionField struct {
	SubmissionID string `gorm:"primarykey;size:26" json:"submission_id"`
	FieldID      string `gorm:"primarykey;size:26" json:"field_id"`
	FieldType    int    `gorm:"not null" json:"field_type"`
	Value        string `json:"value"`
}
