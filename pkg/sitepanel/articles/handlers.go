// Package articles implements the blog subsystem: per-website articles with
// one localization row per language.
package articles

import (
	"log"
	"net/http"
	"strconv"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/auth"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles article requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new articles handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// LocalizationPayload is one language's content in create/update payloads.
type LocalizationPayload struct {
	Lang    string `json:"lang" binding:"required,max=5"`
	Title   string `json:"title" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

// CreateRequest creates an article with at least one localization.
type CreateRequest struct {
	Status        *int                  `json:"status" binding:"omitempty,oneof=0 1"`
	Localizations []LocalizationPayload `json:"localizations" binding:"required,min=1,dive"`
}

// UpdateRequest is a partial article update. Localizations, when present,
// replaces the whole set.
type UpdateRequest struct {
	Status        *int                   `json:"status" binding:"omitempty,oneof=0 1"`
	Localizations *[]LocalizationPayload `json:"localizations" binding:"omitempty,dive"`
}

// List returns the website's articles
// @Summary List articles
// @Tags articles
// @Produce json
// @Param website path string true "Website ID"
// @Param status query int false "Filter by status (0 draft, 1 published)"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Website not found"
// @Security BearerAuth
// @Router /websites/{website}/articles [get]
func (h *Handler) List(c *gin.Context) {
	website := auth.GetWebsite(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	query := h.db.Model(&models.Article{}).Where("website_id = ?", website.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	var articles []models.Article
	if err := query.Preload("Localizations").
		Order("created_at DESC").Offset((page - 1) * perPage).Limit(perPage).
		Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": articles,
		"meta": gin.H{
			"current_page": page,
			"per_page":     perPage,
			"total":        total,
		},
	})
}

// Create creates a new article
// @Summary Create an article
// @Tags articles
// @Accept json
// @Produce json
// @Param website path string true "Website ID"
// @Param request body CreateRequest true "Article data"
// @Success 201 {object} models.Article
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/articles [post]
func (h *Handler) Create(c *gin.Context) {
	website := auth.GetWebsite(c)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	userID, _ := auth.GetUserID(c)
	article := models.Article{
		WebsiteID:   website.ID,
		CreatedByID: &userID,
		UpdatedByID: &userID,
	}
	if req.Status != nil {
		article.Status = *req.Status
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&article).Error; err != nil {
			return err
		}
		for _, loc := range req.Localizations {
			row := models.ArticleLocalization{
				ArticleID: article.ID,
				Lang:      loc.Lang,
				Title:     loc.Title,
				Slug:      loc.Slug,
				Content:   loc.Content,
				Tags:      loc.Tags,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("articles: create failed for website %s: %v", website.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	h.db.Preload("Localizations").First(&article, "id = ?", article.ID)
	c.JSON(http.StatusCreated, article)
}

// Get returns one article
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param website path string true "Website ID"
// @Param id path string true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} map[string]string "Article not found"
// @Security BearerAuth
// @Router /websites/{website}/articles/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	website := auth.GetWebsite(c)

	var article models.Article
	if err := h.db.Preload("Localizations").
		Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&article).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Update updates an article
// @Summary Update an article
// @Tags articles
// @Accept json
// @Param website path string true "Website ID"
// @Param id path string true "Article ID"
// @Param request body UpdateRequest true "Fields to patch"
// @Success 204 "Updated"
// @Failure 404 {object} map[string]string "Article not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /websites/{website}/articles/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	website := auth.GetWebsite(c)

	var article models.Article
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&article).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	userID, _ := auth.GetUserID(c)
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Status != nil {
			article.Status = *req.Status
		}
		article.UpdatedByID = &userID
		if err := tx.Save(&article).Error; err != nil {
			return err
		}

		if req.Localizations != nil {
			if err := tx.Where("article_id = ?", article.ID).
				Delete(&models.ArticleLocalization{}).Error; err != nil {
				return err
			}
			for _, loc := range *req.Localizations {
				row := models.ArticleLocalization{
					ArticleID: article.ID,
					Lang:      loc.Lang,
					Title:     loc.Title,
					Slug:      loc.Slug,
					Content:   loc.Content,
					Tags:      loc.Tags,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("articles: update failed for %s: %v", article.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes an article
// @Summary Delete an article
// @Tags articles
// @Param website path string true "Website ID"
// @Param id path string true "Article ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Article not found"
// @Security BearerAuth
// @Router /websites/{website}/articles/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	website := auth.GetWebsite(c)

	var article models.Article
	if err := h.db.Where("website_id = ? AND id = ?", website.ID, c.Param("id")).
		First(&article).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if err := h.db.Delete(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers article routes on a website-scoped group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/articles", h.List)
	rg.POST("/articles", h.Create)
	rg.GET("/articles/:id", h.Get)
	rg.PUT("/articles/:id", h.Update)
	rg.DELETE("/articles/:id", h.Delete)
}
