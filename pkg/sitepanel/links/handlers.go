// Package links implements the external-links subsystem: a per-website,
// user-reorderable list that is either flat ("single" mode) or bucketed into
// named groups ("group" mode).
//
// The editing UI autosaves the entire tree (debounced) through Save, which
// atomically replaces the persisted state; fine-grained edits go through the
// incremental item/group handlers, which patch in place and preserve ids.
package links

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

// Handler handles external-link requests
type Handler struct {
	db    *gorm.DB
	locks *tenantlock.Registry
}

// NewHandler creates a new external-links handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, locks: tenantlock.NewRegistry()}
}

// linkFields is the payload row the reconciliation engine runs over.
type linkFields struct {
	Label string
	URL   string
}

// A row with no label and no URL is a UI placeholder, never persisted.
func linkFieldsEmpty(f linkFields) bool {
	return f.Label == "" && f.URL == ""
}

// SaveItem is one row of a single-mode bulk payload. Index is accepted for
// wire compatibility but the reconciler always reassigns it.
type SaveItem struct {
	Label string `json:"label"`
	URL   string `json:"url" binding:"omitempty,max=2048"`
	Index *int   `json:"index"`
}

// SaveGroupItem is one row of a group in a group-mode bulk payload.
type SaveGroupItem struct {
	Label      string `json:"label"`
	URL        string `json:"url" binding:"omitempty,max=2048"`
	GroupIndex *int   `json:"group_index"`
}

// SaveGroup is one group of a group-mode bulk payload. Index is accepted for
// wire compatibility; the reconciler assigns payload position.
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

// ItemResponse represents an external link in API responses
type ItemResponse struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	URL        string  `json:"url"`
	Index      int     `json:"index"`
	GroupIndex int     `json:"group_index"`
	GroupID    *string `json:"group_id"`
}

func itemToResponse(link models.ExternalLink) ItemResponse {
	return ItemResponse{
		ID:         link.ID,
		Label:      link.Label,
		URL:        link.URL,
		Index:      link.Index,
		GroupIndex: link.GroupIndex,
		GroupID:    link.GroupID,
	}
}

// List returns the website's ungrouped links
// @Summary List ungrouped external links
// @Description Get the website's flat (single-mode) external links in display order
// @Tags external-links
// @Produce json
// @Param website path string true "Website ID"
// @Success 200 {object} map[string][]ItemResponse
// @Failure 404 {object} map[string]string "Website not found"
// @Security BearerAuth
// @Router /websites/{website}/external-links [get]
func (h *Handler) List(c *gin.Context) {
	website := auth.GetWebsite(c)

	var items []models.ExternalLink
	if err := h.db.Where("website_id = ? AND group_id IS NULL", website.ID).
		Order("idx").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}

	data := make([]gin.H, len(items))
	for i, item := range items {
		data[i] = gin.H{"id": item.ID, "label": item.Label, "url": item.URL}
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Save replaces the website's external-link state from a full payload
// @Summary Bulk-save external links
// @Description Replace the website's external-link list (single mode) or the whole group tree (group mode) from a complete snapshot. Rows with empty label and URL are dropped.
// @Tags external-links
// @Accept json
// @Param website path string true "Website ID"
// @Param request body SaveRequest true "Desired state"
// @Success 204 "Saved"
// @Failure 404 {object} map[string]string "Website not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/external-links [post]
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
			log.Printf("links: bulk single save failed for website %s: %v", website.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save links"})
			return
		}
	case ModeGroup:
		if len(req.Groups) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "groups is required"})
			return
		}
		if err := h.saveGroups(website.ID, req.Groups); err != nil {
			log.Printf("links: bulk group save failed for website %s: %v", website.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save links"})
			return
		}
	}

	c.Status(http.StatusNoContent)
}

// saveSingle wipes the website's ungrouped links and recreates them from the
// normalized payload. Grouped links are untouched; single mode only owns the
// flat list.
func (h *Handler) saveSingle(websiteID string, items []SaveItem) error {
	fields := make([]linkFields, len(items))
	for i, it := range items {
		fields[i] = linkFields{Label: it.Label, URL: it.URL}
	}
	rows := ordering.ReconcileSingle(fields, linkFieldsEmpty)

	return h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("website_id = ? AND group_id IS NULL", websiteID).
			Delete(&models.ExternalLink{}).Error; err != nil {
			return err
		}
		for _, row := range rows {
			link := models.ExternalLink{
				WebsiteID:  websiteID,
				Label:      row.Value.Label,
				URL:        row.Value.URL,
				Index:      row.Index,
				GroupID:    nil,
				GroupIndex: 0,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// saveGroups wipes ALL of the website's links and groups — group mode owns
// the entire list — and recreates the tree from the normalized payload.
func (h *Handler) saveGroups(websiteID string, groups []SaveGroup) error {
	payload := make([]ordering.Group[linkFields], len(groups))
	for i, g := range groups {
		entries := make([]ordering.GroupEntry[linkFields], len(g.Items))
		for j, it := range g.Items {
			entries[j] = ordering.GroupEntry[linkFields]{
				Value:      linkFields{Label: it.Label, URL: it.URL},
				GroupIndex: it.GroupIndex,
			}
		}
		payload[i] = ordering.Group[linkFields]{Name: g.Name, Items: entries}
	}
	reconciled := ordering.ReconcileGroups(payload, linkFieldsEmpty)

	return h.db.Transaction(func(tx *gorm.DB) error {
		// Deletes happen before all inserts; a failure anywhere rolls the
		// whole replace back.
		if err := tx.Where("website_id = ?", websiteID).
			Delete(&models.ExternalLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("website_id = ?", websiteID).
			Delete(&models.ExternalLinkGroup{}).Error; err != nil {
			return err
		}

		for _, rg := range reconciled {
			group := models.ExternalLinkGroup{
				WebsiteID: websiteID,
				Name:      rg.Name,
				Index:     rg.Index,
			}
			if err := tx.Create(&group).Error; err != nil {
				return err
			}
			for _, row := range rg.Items {
				link := models.ExternalLink{
					WebsiteID:  websiteID,
					GroupID:    &group.ID,
					Label:      row.Value.Label,
					URL:        row.Value.URL,
					Index:      row.Index,
					GroupIndex: row.GroupIndex,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// UpdateItemRequest is a partial update of one link. group_id distinguishes
// absent (untouched), null (move to the flat list) and a group id (move into
// that group).
type UpdateItemRequest struct {
	Label      *string                `json:"label"`
	URL        *string                `json:"url" binding:"omitempty,max=2048"`
	Index      *int                   `json:"index"`
	GroupID    jsonx.Nullable[string] `json:"group_id"`
	GroupIndex *int                   `json:"group_index"`
}

// UpdateItem patches a single link
// @Summary Update an external link
// @Description Patch a link's fields. Setting group_id to null moves it back to the flat list and resets group_index; setting it to a group requires the group to belong to the same website.
// @Tags external-links
// @Accept json
// @Param website path string true "Website ID"
// @Param id path string true "Link ID"
// @Param request body UpdateItemRequest true "Fields to patch"
// @Success 204 "Updated"
// @Failure 404 {object} map[string]string "Link or target group not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/external-links/{id} [put]
func (h *Handler) UpdateItem(c *gin.Context) {
	website := auth.GetWebsite(c)

	// Scoped lookup: an id belonging to another website is a 404, same as a
	// nonexistent one.
	var link models.ExternalLink
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
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
				var group models.ExternalLinkGroup
				if err := tx.Where("website_id = ? AND id = ?", website.ID, *req.GroupID.Value).
					First(&group).Error; err != nil {
					return errGroupNotFound
				}
				link.GroupID = &group.ID
				link.GroupIndex = 0
				if req.GroupIndex != nil {
					link.GroupIndex = *req.GroupIndex
				}
			} else {
				// Back to the flat list; group_index must not go stale.
				link.GroupID = nil
				link.GroupIndex = 0
			}
		}

		if req.Index != nil {
			link.Index = *req.Index
		}
		if req.Label != nil {
			link.Label = *req.Label
		}
		if req.URL != nil {
			link.URL = *req.URL
		}

		return tx.Save(&link).Error
	})

	if errors.Is(err, errGroupNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if err != nil {
		log.Printf("links: update failed for link %s: %v", link.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update link"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteItem deletes a single link
// @Summary Delete an external link
// @Tags external-links
// @Param website path string true "Website ID"
// @Param id path string true "Link ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /websites/{website}/external-links/{id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	website := auth.GetWebsite(c)

	var link models.ExternalLink
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	defer h.locks.Lock(website.ID)()

	if err := h.db.Delete(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DisplayModeRequest toggles the website's external-link presentation.
type DisplayModeRequest struct {
	Mode *models.DisplayMode `json:"mode" binding:"required,oneof=0 1"`
}

// UpdateDisplayMode persists the single/group toggle
// @Summary Set external-link display mode
// @Description Persist the website's single (0) / group (1) toggle. Purely a presentation choice; no rows are migrated.
// @Tags external-links
// @Accept json
// @Param website path string true "Website ID"
// @Param request body DisplayModeRequest true "Display mode"
// @Success 204 "Saved"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/external-links/display-mode [put]
func (h *Handler) UpdateDisplayMode(c *gin.Context) {
	website := auth.GetWebsite(c)

	var req DisplayModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Model(website).
		Update("external_link_display_mode", *req.Mode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update display mode"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers external-link routes on a website-scoped group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/external-links", h.List)
	rg.POST("/external-links", h.Save)
	rg.PUT("/external-links/display-mode", h.UpdateDisplayMode)
	rg.PUT("/external-links/:id", h.UpdateItem)
	rg.DELETE("/external-links/:id", h.DeleteItem)

	rg.GET("/external-link-groups", h.ListGroups)
	rg.POST("/external-link-groups", h.CreateGroup)
	rg.PUT("/external-link-groups/:id", h.UpdateGroup)
	rg.DELETE("/external-link-groups/:id", h.DeleteGroup)
}
