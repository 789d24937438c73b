// Package faqs implements the FAQ subsystem. FAQs share the external-links
// editing model: a per-website ordered list, flat in "single" mode or
// bucketed into named groups in "group" mode, autosaved as a full snapshot
// and patched incrementally between saves.
package faqs

import (
	"errors"
	"log"
	"net/http"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/auth"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/jsonx"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/ordering"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/tenantlock"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Save payload modes
const (
	ModeSingle = "single"
	ModeGroup  = "group"
)

var errGroupNotFound = errors.New("group not found")

// Handler handles FAQ requests
type Handler struct {
	db    *gorm.DB
	locks *tenantlock.Registry
}

// NewHandler creates a new FAQ handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, locks: tenantlock.NewRegistry()}
}

// faqFields is the payload row the reconciliation engine runs over.
type faqFields struct {
	Question string
	Answer   string
}

// A row with no question and no answer is a UI placeholder, never persisted.
func faqFieldsEmpty(f faqFields) bool {
	return f.Question == "" && f.Answer == ""
}

// SaveItem is one row of a single-mode bulk payload.
type SaveItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Index    *int   `json:"index"`
}

// SaveGroupItem is one row of a group in a group-mode bulk payload.
type SaveGroupItem struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	GroupIndex *int   `json:"group_index"`
}

// SaveGroup is one group of a group-mode bulk payload.
type SaveGroup struct {
	Name  *string         `json:"name"`
	Index *int            `json:"index"`
	Items []SaveGroupItem `json:"items"`
}

// SaveRequest is the full desired-state payload of a bulk autosave.
type SaveRequest struct {
	Mode   string      `json:"mode" binding:"required,oneof=single group"`
	Items  []SaveItem  `json:"items" binding:"omitempty,dive"`
	Groups []SaveGroup `json:"groups" binding:"omitempty,dive"`
}

// ItemResponse represents a FAQ in API responses
type ItemResponse struct {
	ID         string  `json:"id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Index      int     `json:"index"`
	GroupIndex int     `json:"group_index"`
	GroupID    *string `json:"group_id"`
}

func itemToResponse(faq models.Faq) ItemResponse {
	return ItemResponse{
		ID:         faq.ID,
		Question:   faq.Question,
		Answer:     faq.Answer,
		Index:      faq.Index,
		GroupIndex: faq.GroupIndex,
		GroupID:    faq.GroupID,
	}
}

// List returns the website's ungrouped FAQs
// @Summary List ungrouped FAQs
// @Description Get the website's flat (single-mode) FAQs in display order
// @Tags faqs
// @Produce json
// @Param website path string true "Website ID"
// @Success 200 {object} map[string][]ItemResponse
// @Failure 404 {object} map[string]string "Website not found"
// @Security BearerAuth
// @Router /websites/{website}/faqs [get]
func (h *Handler) List(c *gin.Context) {
	website := auth.GetWebsite(c)

	var items []models.Faq
	if err := h.db.Where("website_id = ? AND group_id IS NULL", website.ID).
		Order("idx").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FAQs"})
		return
	}

	data := make([]gin.H, len(items))
	for i, item := range items {
		data[i] = gin.H{"id": item.ID, "question": item.Question, "answer": item.Answer}
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Save replaces the website's FAQ state from a full payload
// @Summary Bulk-save FAQs
// @Description Replace the website's FAQ list (single mode) or the whole group tree (group mode) from a complete snapshot. Rows with empty question and answer are dropped.
// @Tags faqs
// @Accept json
// @Param website path string true "Website ID"
// @Param request body SaveRequest true "Desired state"
// @Success 204 "Saved"
// @Failure 404 {object} map[string]string "Website not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/faqs [post]
func (h *Handler) Save(c *gin.Context) {
	website := auth.GetWebsite(c)

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	defer h.locks.Lock(website.ID)()

	switch req.Mode {
	case ModeSingle:
		if len(req.Items) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "items is required"})
			return
		}
		if err := h.saveSingle(website.ID, req.Items); err != nil {
			log.Printf("faqs: bulk single save failed for website %s: %v", website.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save FAQs"})
			return
		}
	case ModeGroup:
		if len(req.Groups) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "groups is required"})
			return
		}
		if err := h.saveGroups(website.ID, req.Groups); err != nil {
			log.Printf("faqs: bulk group save failed for website %s: %v", website.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save FAQs"})
			return
		}
	}

	c.Status(http.StatusNoContent)
}

// saveSingle wipes the website's ungrouped FAQs and recreates them from the
// normalized payload. Grouped FAQs are untouched.
func (h *Handler) saveSingle(websiteID string, items []SaveItem) error {
	fields := make([]faqFields, len(items))
	for i, it := range items {
		fields[i] = faqFields{Question: it.Question, Answer: it.Answer}
	}
	rows := ordering.ReconcileSingle(fields, faqFieldsEmpty)

	return h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("website_id = ? AND group_id IS NULL", websiteID).
			Delete(&models.Faq{}).Error; err != nil {
			return err
		}
		for _, row := range rows {
			faq := models.Faq{
				WebsiteID:  websiteID,
				Question:   row.Value.Question,
				Answer:     row.Value.Answer,
				Index:      row.Index,
				GroupID:    nil,
				GroupIndex: 0,
			}
			if err := tx.Create(&faq).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// saveGroups wipes ALL of the website's FAQs and groups — group mode owns the
// entire list — and recreates the tree from the normalized payload.
func (h *Handler) saveGroups(websiteID string, groups []SaveGroup) error {
	payload := make([]ordering.Group[faqFields], len(groups))
	for i, g := range groups {
		entries := make([]ordering.GroupEntry[faqFields], len(g.Items))
		for j, it := range g.Items {
			entries[j] = ordering.GroupEntry[faqFields]{
				Value:      faqFields{Question: it.Question, Answer: it.Answer},
				GroupIndex: it.GroupIndex,
			}
		}
		payload[i] = ordering.Group[faqFields]{Name: g.Name, Items: entries}
	}
	reconciled := ordering.ReconcileGroups(payload, faqFieldsEmpty)

	return h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("website_id = ?", websiteID).
			Delete(&models.Faq{}).Error; err != nil {
			return err
		}
		if err := tx.Where("website_id = ?", websiteID).
			Delete(&models.FaqGroup{}).Error; err != nil {
			return err
		}

		for _, rg := range reconciled {
			group := models.FaqGroup{
				WebsiteID: websiteID,
				Name:      rg.Name,
				Index:     rg.Index,
			}
			if err := tx.Create(&group).Error; err != nil {
				return err
			}
			for _, row := range rg.Items {
				faq := models.Faq{
					WebsiteID:  websiteID,
					GroupID:    &group.ID,
					Question:   row.Value.Question,
					Answer:     row.Value.Answer,
					Index:      row.Index,
					GroupIndex: row.GroupIndex,
				}
				if err := tx.Create(&faq).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// UpdateItemRequest is a partial update of one FAQ. group_id distinguishes
// absent (untouched), null (move to the flat list) and a group id (move into
// that group).
type UpdateItemRequest struct {
	Question   *string                `json:"question"`
	Answer     *string                `json:"answer"`
	Index      *int                   `json:"index"`
	GroupID    jsonx.Nullable[string] `json:"group_id"`
	GroupIndex *int                   `json:"group_index"`
}

// UpdateItem patches a single FAQ
// @Summary Update a FAQ
// @Description Patch a FAQ's fields. Setting group_id to null moves it back to the flat list and resets group_index; setting it to a group requires the group to belong to the same website.
// @Tags faqs
// @Accept json
// @Param website path string true "Website ID"
// @Param id path string true "FAQ ID"
// @Param request body UpdateItemRequest true "Fields to patch"
// @Success 204 "Updated"
// @Failure 404 {object} map[string]string "FAQ or target group not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/faqs/{id} [put]
func (h *Handler) UpdateItem(c *gin.Context) {
	website := auth.GetWebsite(c)

	var faq models.Faq
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&faq).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "FAQ not found"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	defer h.locks.Lock(website.ID)()

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.GroupID.Set {
			if req.GroupID.Value != nil {
				var group models.FaqGroup
				if err := tx.Where("website_id = ? AND id = ?", website.ID, *req.GroupID.Value).
					First(&group).Error; err != nil {
					return errGroupNotFound
				}
				faq.GroupID = &group.ID
				faq.GroupIndex = 0
				if req.GroupIndex != nil {
					faq.GroupIndex = *req.GroupIndex
				}
			} else {
				faq.GroupID = nil
				faq.GroupIndex = 0
			}
		}

		if req.Index != nil {
			faq.Index = *req.Index
		}
		if req.Question != nil {
			faq.Question = *req.Question
		}
		if req.Answer != nil {
			faq.Answer = *req.Answer
		}

		return tx.Save(&faq).Error
	})

	if errors.Is(err, errGroupNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if err != nil {
		log.Printf("faqs: update failed for faq %s: %v", faq.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update FAQ"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteItem deletes a single FAQ
// @Summary Delete a FAQ
// @Tags faqs
// @Param website path string true "Website ID"
// @Param id path string true "FAQ ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "FAQ not found"
// @Security BearerAuth
// @Router /websites/{website}/faqs/{id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	website := auth.GetWebsite(c)

	var faq models.Faq
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&faq).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "FAQ not found"})
		return
	}

	defer h.locks.Lock(website.ID)()

	if err := h.db.Delete(&faq).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete FAQ"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DisplayModeRequest toggles the website's FAQ presentation.
type DisplayModeRequest struct {
	Mode *models.DisplayMode `json:"mode" binding:"required,oneof=0 1"`
}

// UpdateDisplayMode persists the single/group toggle
// @Summary Set FAQ display mode
// @Description Persist the website's single (0) / group (1) toggle. Purely a presentation choice; no rows are migrated.
// @Tags faqs
// @Accept json
// @Param website path string true "Website ID"
// @Param request body DisplayModeRequest true "Display mode"
// @Success 204 "Saved"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/faqs/display-mode [put]
func (h *Handler) UpdateDisplayMode(c *gin.Context) {
	website := auth.GetWebsite(c)

	var req DisplayModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Model(website).
		Update("faq_display_mode", *req.Mode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update display mode"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers FAQ routes on a website-scoped group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/faqs", h.List)
	rg.POST("/faqs", h.Save)
	rg.PUT("/faqs/display-mode", h.UpdateDisplayMode)
	rg.PUT("/faqs/:id", h.UpdateItem)
	rg.DELETE("/faqs/:id", h.DeleteItem)

	rg.GET("/faq-groups", h.ListGroups)
	rg.POST("/faq-groups", h.CreateGroup)
	rg.PUT("/faq-groups/:id", h.UpdateGroup)
	rg.DELETE("/faq-groups/:id", h.DeleteGroup)
}
