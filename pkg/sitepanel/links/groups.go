package links

import (
	"log"
	"net/http"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/auth"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/ordering"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Seed row for a freshly created group so the editor has something to show.
const (
	seedItemLabel = "Link Label"
	seedItemURL   = "https://"
)

// GroupResponse represents a link group in API responses
type GroupResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []ItemResponse `json:"items"`
}

// ListGroups returns the website's link groups with their members
// @Summary List external-link groups
// @Description Get all groups in display order, each with its links ordered by group_index then index
// @Tags external-links
// @Produce json
// @Param website path string true "Website ID"
// @Success 200 {object} map[string][]GroupResponse
// @Failure 404 {object} map[string]string "Website not found"
// @Security BearerAuth
// @Router /websites/{website}/external-link-groups [get]
func (h *Handler) ListGroups(c *gin.Context) {
	website := auth.GetWebsite(c)

	var groups []models.ExternalLinkGroup
	if err := h.db.Where("website_id = ?", website.ID).
		Order("idx").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	data := make([]GroupResponse, len(groups))
	for i, group := range groups {
		var items []models.ExternalLink
		if err := h.db.Where("website_id = ? AND group_id = ?", website.ID, group.ID).
			Order("group_index").Order("idx").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
			return
		}

		responses := make([]ItemResponse, len(items))
		for j, item := range items {
			responses[j] = itemToResponse(item)
		}
		data[i] = GroupResponse{ID: group.ID, Name: group.Name, Items: responses}
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// CreateGroupRequest names a new group; nil gets a generated name.
type CreateGroupRequest struct {
	Name *string `json:"name"`
}

// CreateGroup appends a new link group
// @Summary Create an external-link group
// @Description Append a group after the website's last one and seed it with a single placeholder link
// @Tags external-links
// @Accept json
// @Produce json
// @Param website path string true "Website ID"
// @Param request body CreateGroupRequest true "Group name (optional)"
// @Success 201 {object} GroupResponse
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/external-link-groups [post]
func (h *Handler) CreateGroup(c *gin.Context) {
	website := auth.GetWebsite(c)

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	defer h.locks.Lock(website.ID)()

	var group models.ExternalLinkGroup
	var seed models.ExternalLink

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var maxIdx int
		if err := tx.Model(&models.ExternalLinkGroup{}).
			Where("website_id = ?", website.ID).
			Select("COALESCE(MAX(idx), 0)").Scan(&maxIdx).Error; err != nil {
			return err
		}
		nextIdx := maxIdx + 1

		group = models.ExternalLinkGroup{
			WebsiteID: website.ID,
			Name:      ordering.GroupName(req.Name, nextIdx),
			Index:     nextIdx,
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		seed = models.ExternalLink{
			WebsiteID:  website.ID,
			GroupID:    &group.ID,
			Label:      seedItemLabel,
			URL:        seedItemURL,
			Index:      0,
			GroupIndex: 0,
		}
		return tx.Create(&seed).Error
	})
	if err != nil {
		log.Printf("links: group create failed for website %s: %v", website.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, GroupResponse{
		ID:    group.ID,
		Name:  group.Name,
		Items: []ItemResponse{itemToResponse(seed)},
	})
}

// GroupItemPatch is one row of an UpdateGroup items batch, matched by id.
type GroupItemPatch struct {
	ID         string  `json:"id" binding:"required"`
	Label      *string `json:"label"`
	URL        *string `json:"url" binding:"omitempty,max=2048"`
	GroupIndex *int    `json:"group_index"`
}

// UpdateGroupRequest patches a group and, optionally, a batch of its items.
type UpdateGroupRequest struct {
	Name  *string          `json:"name"`
	Index *int             `json:"index"`
	Items []GroupItemPatch `json:"items" binding:"omitempty,dive"`
}

// UpdateGroup patches a group and optionally its items
// @Summary Update an external-link group
// @Description Patch the group's name/index; an optional items batch patches member links by id. Rows that don't belong to this website and group are skipped.
// @Tags external-links
// @Accept json
// @Param website path string true "Website ID"
// @Param id path string true "Group ID"
// @Param request body UpdateGroupRequest true "Fields to patch"
// @Success 204 "Updated"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/external-link-groups/{id} [put]
func (h *Handler) UpdateGroup(c *gin.Context) {
	website := auth.GetWebsite(c)

	var group models.ExternalLinkGroup
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	defer h.locks.Lock(website.ID)()

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			group.Name = *req.Name
		}
		if req.Index != nil {
			group.Index = *req.Index
		}
		if err := tx.Save(&group).Error; err != nil {
			return err
		}

		for _, patch := range req.Items {
			var link models.ExternalLink
			if err := tx.Where("website_id = ? AND group_id = ? AND id = ?",
				website.ID, group.ID, patch.ID).First(&link).Error; err != nil {
				// Foreign or vanished row: skip, don't fail the batch.
				continue
			}

			if patch.Label != nil {
				link.Label = *patch.Label
			}
			if patch.URL != nil {
				link.URL = *patch.URL
			}
			if patch.GroupIndex != nil {
				link.GroupIndex = *patch.GroupIndex
			}
			if err := tx.Save(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("links: group update failed for group %s: %v", group.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteGroup deletes a group and all its links
// @Summary Delete an external-link group
// @Description Delete the group and cascade to every link in it
// @Tags external-links
// @Param website path string true "Website ID"
// @Param id path string true "Group ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /websites/{website}/external-link-groups/{id} [delete]
func (h *Handler) DeleteGroup(c *gin.Context) {
	website := auth.GetWebsite(c)

	var group models.ExternalLinkGroup
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	defer h.locks.Lock(website.ID)()

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("website_id = ? AND group_id = ?", website.ID, group.ID).
			Delete(&models.ExternalLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		log.Printf("links: group delete failed for group %s: %v", group.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	c.Status(http.StatusNoContent)
}
