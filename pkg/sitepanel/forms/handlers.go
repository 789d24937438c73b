// Package forms implements the form-builder subsystem: per-website forms
// with ordered fields, plus read access to visitor submissions.
package forms

import (
	"log"
	"net/http"
	"strconv"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/auth"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles form requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new forms handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// FieldPayload is one input definition in create/update payloads. Index is
// positional; the payload order is the display order.
type FieldPayload struct {
	Type           int     `json:"type" binding:"min=0,max=9"`
	IsRequired     bool    `json:"is_required"`
	MinValue       float64 `json:"min_value"`
	MaxValue       float64 `json:"max_value"`
	MinDigits      int     `json:"min_digits"`
	MaxDigits      int     `json:"max_digits"`
	IsRandomized   bool    `json:"is_randomized"`
	IsMultiple     bool    `json:"is_multiple"`
	UseCountryCode bool    `json:"use_country_code"`
}

// CreateRequest creates a form with its fields.
type CreateRequest struct {
	Name   string         `json:"name" binding:"required"`
	Fields []FieldPayload `json:"fields" binding:"omitempty,dive"`
}

// UpdateRequest is a partial form update. Fields, when present, replaces the
// whole set.
type UpdateRequest struct {
	Name   *string         `json:"name"`
	Fields *[]FieldPayload `json:"fields" binding:"omitempty,dive"`
}

func fieldFromPayload(formID string, index int, p FieldPayload) models.FormField {
	return models.FormField{
		FormID:         formID,
		Type:           p.Type,
		IsRequired:     p.IsRequired,
		Index:          index,
		MinValue:       p.MinValue,
		MaxValue:       p.MaxValue,
		MinDigits:      p.MinDigits,
		MaxDigits:      p.MaxDigits,
		IsRandomized:   p.IsRandomized,
		IsMultiple:     p.IsMultiple,
		UseCountryCode: p.UseCountryCode,
	}
}

// List returns the website's forms
// @Summary List forms
// @Tags forms
// @Produce json
// @Param website path string true "Website ID"
// @Success 200 {object} map[string][]models.Form
// @Failure 404 {object} map[string]string "Website not found"
// @Security BearerAuth
// @Router /websites/{website}/forms [get]
func (h *Handler) List(c *gin.Context) {
	website := auth.GetWebsite(c)

	var forms []models.Form
	if err := h.db.Where("website_id = ?", website.ID).
		Order("created_at").Find(&forms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch forms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": forms})
}

// Create creates a new form
// @Summary Create a form
// @Tags forms
// @Accept json
// @Produce json
// @Param website path string true "Website ID"
// @Param request body CreateRequest true "Form data"
// @Success 201 {object} models.Form
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/forms [post]
func (h *Handler) Create(c *gin.Context) {
	website := auth.GetWebsite(c)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	form := models.Form{WebsiteID: website.ID, Name: req.Name}
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&form).Error; err != nil {
			return err
		}
		for i, p := range req.Fields {
			field := fieldFromPayload(form.ID, i, p)
			if err := tx.Create(&field).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("forms: create failed for website %s: %v", website.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create form"})
		return
	}

	h.db.Preload("Fields", func(db *gorm.DB) *gorm.DB {
		return db.Order("idx")
	}).First(&form, "id = ?", form.ID)
	c.JSON(http.StatusCreated, form)
}

// Get returns one form with its fields
// @Summary Get a form
// @Tags forms
// @Produce json
// @Param website path string true "Website ID"
// @Param id path string true "Form ID"
// @Success 200 {object} models.Form
// @Failure 404 {object} map[string]string "Form not found"
// @Security BearerAuth
// @Router /websites/{website}/forms/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	website := auth.GetWebsite(c)

	var form models.Form
	if err := h.db.Preload("Fields", func(db *gorm.DB) *gorm.DB {
		return db.Order("idx")
	}).Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}
	c.JSON(http.StatusOK, form)
}

// Update updates a form
// @Summary Update a form
// @Description Patch the form's name; a fields payload replaces the whole field set in payload order
// @Tags forms
// @Accept json
// @Param website path string true "Website ID"
// @Param id path string true "Form ID"
// @Param request body UpdateRequest true "Fields to patch"
// @Success 204 "Updated"
// @Failure 404 {object} map[string]string "Form not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/forms/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	website := auth.GetWebsite(c)

	var form models.Form
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			form.Name = *req.Name
			if err := tx.Save(&form).Error; err != nil {
				return err
			}
		}

		if req.Fields != nil {
			if err := tx.Where("form_id = ?", form.ID).
				Delete(&models.FormField{}).Error; err != nil {
				return err
			}
			for i, p := range *req.Fields {
				field := fieldFromPayload(form.ID, i, p)
				if err := tx.Create(&field).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("forms: update failed for %s: %v", form.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update form"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a form and its fields and submissions
// @Summary Delete a form
// @Tags forms
// @Param website path string true "Website ID"
// @Param id path string true "Form ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Form not found"
// @Security BearerAuth
// @Router /websites/{website}/forms/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	website := auth.GetWebsite(c)

	var form models.Form
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", form.ID).
			Delete(&models.FormField{}).Error; err != nil {
			return err
		}
		var submissions []models.FormSubmission
		if err := tx.Find(&submissions, "form_id = ?", form.ID).Error; err != nil {
			return err
		}
		for _, sub := range submissions {
			if err := tx.Where("submission_id = ?", sub.ID).
				Delete(&models.FormSubmissionField{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("form_id = ?", form.ID).
			Delete(&models.FormSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&form).Error
	})
	if err != nil {
		log.Printf("forms: delete failed for %s: %v", form.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete form"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSubmissions returns a form's submissions
// @Summary List form submissions
// @Tags forms
// @Produce json
// @Param website path string true "Website ID"
// @Param id path string true "Form ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Form not found"
// @Security BearerAuth
// @Router /websites/{website}/forms/{id}/submissions [get]
func (h *Handler) ListSubmissions(c *gin.Context) {
	website := auth.GetWebsite(c)

	var form models.Form
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	var total int64
	h.db.Model(&models.FormSubmission{}).Where("form_id = ?", form.ID).Count(&total)

	var submissions []models.FormSubmission
	if err := h.db.Preload("Fields").Where("form_id = ?", form.ID).
		Order("created_at DESC").Offset((page - 1) * perPage).Limit(perPage).
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": submissions,
		"meta": gin.H{
			"current_page": page,
			"per_page":     perPage,
			"total":        total,
		},
	})
}

// DeleteSubmission removes one submission
// @Summary Delete a form submission
// @Tags forms
// @Param website path string true "Website ID"
// @Param id path string true "Form ID"
// @Param submission path string true "Submission ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Submission not found"
// @Security BearerAuth
// @Router /websites/{website}/forms/{id}/submissions/{submission} [delete]
func (h *Handler) DeleteSubmission(c *gin.Context) {
	website := auth.GetWebsite(c)

	var form models.Form
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}

	var submission models.FormSubmission
	if err := h.db.Where("form_id = ? AND id = ?", form.ID, c.Param("submission")).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", submission.ID).
			Delete(&models.FormSubmissionField{}).Error; err != nil {
			return err
		}
		return tx.Delete(&submission).Error
	})
	if err != nil {
		log.Printf("forms: submission delete failed for %s: %v", submission.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete submission"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers form routes on a website-scoped group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/forms", h.List)
	rg.POST("/forms", h.Create)
	rg.GET("/forms/:id", h.Get)
	rg.PUT("/forms/:id", h.Update)
	rg.DELETE("/forms/:id", h.Delete)

	rg.GET("/forms/:id/submissions", h.ListSubmissions)
	rg.DELETE("/forms/:id/submissions/:submission", h.DeleteSubmission)
}
