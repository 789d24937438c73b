// Package websites implements the admin-facing website (tenant) CRUD.
package websites

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler handles website management requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new websites handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// WebsiteResponse represents a website in API responses
type WebsiteResponse struct {
	ID                      string                 `json:"id"`
	Name                    string                 `json:"name"`
	URL                     string                 `json:"url"`
	FaqDisplayMode          models.DisplayMode     `json:"faq_display_mode"`
	ExternalLinkDisplayMode models.DisplayMode     `json:"external_link_display_mode"`
	DeployedAt              *time.Time             `json:"deployed_at"`
	ExpiredAt               *time.Time             `json:"expired_at"`
	Status                  string                 `json:"status"`
	OrderNumber             string                 `json:"order_number"`
	Features                []string               `json:"features"`
	Clients                 []WebsiteClientSummary `json:"clients"`
}

// WebsiteClientSummary is the client info embedded in website responses.
type WebsiteClientSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toResponse(w models.Website) WebsiteResponse {
	features := make([]string, len(w.Features))
	for i, f := range w.Features {
		features[i] = f.ID
	}
	clients := make([]WebsiteClientSummary, len(w.Clients))
	for i, cl := range w.Clients {
		clients[i] = WebsiteClientSummary{ID: cl.ID, Name: cl.User.Name}
	}
	return WebsiteResponse{
		ID:                      w.ID,
		Name:                    w.Name,
		URL:                     w.URL,
		FaqDisplayMode:          w.FaqDisplayMode,
		ExternalLinkDisplayMode: w.ExternalLinkDisplayMode,
		DeployedAt:              w.DeployedAt,
		ExpiredAt:               w.ExpiredAt(),
		Status:                  w.Status(),
		OrderNumber:             w.OrderNumber,
		Features:                features,
		Clients:                 clients,
	}
}

// Columns the list endpoint may sort by. Anything else falls back to name.
var orderableColumns = map[string]string{
	"name":        "name",
	"url":         "url",
	"deployed_at": "deployed_at",
}

// List returns websites with search, ordering and pagination
// @Summary List websites
// @Description Get all websites, optionally filtered by a keyword over name and URL
// @Tags websites
// @Produce json
// @Param keyword query string false "Search in name and URL"
// @Param order_by query string false "Sort column (name, url, deployed_at)"
// @Param sort query string false "asc or desc"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /websites [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	orderBy, ok := orderableColumns[c.Query("order_by")]
	if !ok {
		orderBy = "name"
	}
	if c.DefaultQuery("sort", "asc") == "desc" {
		orderBy += " DESC"
	}

	query := h.db.Model(&models.Website{})
	if keyword := c.Query("keyword"); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR url LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch websites"})
		return
	}

	var websites []models.Website
	if err := query.Preload("Features").Preload("Clients.User").
		Order(orderBy).Offset((page - 1) * perPage).Limit(perPage).
		Find(&websites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch websites"})
		return
	}

	data := make([]WebsiteResponse, len(websites))
	for i, w := range websites {
		data[i] = toResponse(w)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{
			"current_page": page,
			"per_page":     perPage,
			"total":        total,
		},
	})
}

// CreateRequest creates a website and optionally assigns clients and features.
type CreateRequest struct {
	Name        string     `json:"name" binding:"required"`
	URL         string     `json:"url" binding:"required,max=2048"`
	OrderNumber *string    `json:"order_number"`
	DeployedAt  *time.Time `json:"deployed_at"`
	Clients     []string   `json:"clients"`
	Features    []string   `json:"features"`
}

// Create creates a new website
// @Summary Create a website
// @Tags websites
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Website data"
// @Success 201 {object} WebsiteResponse
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	website := models.Website{
		Name:        req.Name,
		URL:         req.URL,
		DeployedAt:  req.DeployedAt,
		OrderNumber: uuid.NewString(),
	}
	if req.OrderNumber != nil {
		website.OrderNumber = *req.OrderNumber
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&website).Error; err != nil {
			return err
		}
		if len(req.Clients) > 0 {
			var clients []models.Client
			if err := tx.Find(&clients, "id IN ?", req.Clients).Error; err != nil {
				return err
			}
			if err := tx.Model(&website).Association("Clients").Append(&clients); err != nil {
				return err
			}
		}
		if len(req.Features) > 0 {
			var features []models.WebsiteFeature
			if err := tx.Find(&features, "id IN ?", req.Features).Error; err != nil {
				return err
			}
			return tx.Model(&website).Association("Features").Append(&features)
		}
		return nil
	})
	if err != nil {
		log.Printf("websites: create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create website"})
		return
	}

	h.db.Preload("Features").Preload("Clients.User").First(&website, "id = ?", website.ID)
	c.JSON(http.StatusCreated, toResponse(website))
}

// Get returns one website
// @Summary Get a website
// @Tags websites
// @Produce json
// @Param website path string true "Website ID"
// @Success 200 {object} WebsiteResponse
// @Failure 404 {object} map[string]string "Website not found"
// @Security BearerAuth
// @Router /websites/{website} [get]
func (h *Handler) Get(c *gin.Context) {
	var website models.Website
	if err := h.db.Preload("Features").Preload("Clients.User").
		First(&website, "id = ?", c.Param("website")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Website not found"})
		return
	}
	c.JSON(http.StatusOK, toResponse(website))
}

// UpdateRequest is a partial website update. Clients and Features replace the
// whole association when present.
type UpdateRequest struct {
	Name        *string    `json:"name"`
	URL         *string    `json:"url" binding:"omitempty,max=2048"`
	OrderNumber *string    `json:"order_number"`
	DeployedAt  *time.Time `json:"deployed_at"`
	Clients     *[]string  `json:"clients"`
	Features    *[]string  `json:"features"`
}

// Update updates a website
// @Summary Update a website
// @Tags websites
// @Accept json
// @Param website path string true "Website ID"
// @Param request body UpdateRequest true "Fields to patch"
// @Success 204 "Updated"
// @Failure 404 {object} map[string]string "Website not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website} [put]
func (h *Handler) Update(c *gin.Context) {
	var website models.Website
	if err := h.db.First(&website, "id = ?", c.Param("website")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Website not found"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			website.Name = *req.Name
		}
		if req.URL != nil {
			website.URL = *req.URL
		}
		if req.OrderNumber != nil {
			website.OrderNumber = *req.OrderNumber
		}
		if req.DeployedAt != nil {
			website.DeployedAt = req.DeployedAt
		}
		if err := tx.Save(&website).Error; err != nil {
			return err
		}

		if req.Clients != nil {
			var clients []models.Client
			if err := tx.Find(&clients, "id IN ?", *req.Clients).Error; err != nil {
				return err
			}
			if err := tx.Model(&website).Association("Clients").Replace(&clients); err != nil {
				return err
			}
		}
		if req.Features != nil {
			var features []models.WebsiteFeature
			if err := tx.Find(&features, "id IN ?", *req.Features).Error; err != nil {
				return err
			}
			return tx.Model(&website).Association("Features").Replace(&features)
		}
		return nil
	})
	if err != nil {
		log.Printf("websites: update failed for %s: %v", website.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update website"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a website and all of its content
// @Summary Delete a website
// @Description Delete the website and cascade to its links, FAQs, articles and forms
// @Tags websites
// @Param website path string true "Website ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Website not found"
// @Security BearerAuth
// @Router /websites/{website} [delete]
func (h *Handler) Delete(c *gin.Context) {
	var website models.Website
	if err := h.db.First(&website, "id = ?", c.Param("website")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Website not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		scoped := []interface{}{
			&models.ExternalLink{},
			&models.ExternalLinkGroup{},
			&models.Faq{},
			&models.FaqGroup{},
		}
		for _, model := range scoped {
			if err := tx.Where("website_id = ?", website.ID).Delete(model).Error; err != nil {
				return err
			}
		}

		var articles []models.Article
		if err := tx.Find(&articles, "website_id = ?", website.ID).Error; err != nil {
			return err
		}
		for _, article := range articles {
			if err := tx.Where("article_id = ?", article.ID).
				Delete(&models.ArticleLocalization{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("website_id = ?", website.ID).Delete(&models.Article{}).Error; err != nil {
			return err
		}

		var forms []models.Form
		if err := tx.Find(&forms, "website_id = ?", website.ID).Error; err != nil {
			return err
		}
		for _, form := range forms {
			if err := tx.Where("form_id = ?", form.ID).Delete(&models.FormField{}).Error; err != nil {
				return err
			}
			if err := tx.Where("form_id = ?", form.ID).Delete(&models.FormSubmission{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("website_id = ?", website.ID).Delete(&models.Form{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&website).Association("Clients").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&website).Association("Features").Clear(); err != nil {
			return err
		}
		return tx.Delete(&website).Error
	})
	if err != nil {
		log.Printf("websites: delete failed for %s: %v", website.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete website"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers website management routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:website", h.Get)
	rg.PUT("/:website", h.Update)
	rg.DELETE("/:website", h.Delete)
}
